package hr

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/listview-go"
	"github.com/nrfta/listview-go/offset"
	"github.com/nrfta/listview-go/sqlboiler"
	"github.com/nrfta/listview-go/urlstate"
)

// List bundles what a caller needs to page over one kind of record.
type List[T any] struct {
	Name         string
	Codec        urlstate.Codec
	Sorts        sqlboiler.SortSchema
	DefaultOrder []listview.OrderBy
	Fetcher      listview.Fetcher[T]
}

// Paginator returns a PageFetcher ordered by the sort key, or by the
// default order when the key is empty or unknown.
func (l List[T]) Paginator(sortKey string, desc bool) *offset.Paginator[T] {
	return offset.New(l.Fetcher,
		offset.WithOrderBy(l.Sorts.OrderBy(sortKey, desc, l.DefaultOrder...)...),
		offset.WithPageConfig(l.Codec.Config),
	)
}

var (
	employeeFilters = sqlboiler.FilterSchema{
		"status":     "status",
		"department": "department",
	}

	employeeSorts = sqlboiler.SortSchema{
		"name":       "last_name",
		"email":      "email",
		"department": "department",
		"hired":      "hired_on",
	}

	employeeOrder = []listview.OrderBy{
		{Column: "last_name"},
		{Column: "first_name"},
		{Column: "id"},
	}

	expenseFilters = sqlboiler.FilterSchema{
		"status":   "status",
		"category": "category",
		"employee": "employee_id",
	}

	expenseSorts = sqlboiler.SortSchema{
		"amount":    "amount_cents",
		"submitted": "submitted_on",
		"category":  "category",
	}

	expenseOrder = []listview.OrderBy{
		{Column: "submitted_on", Desc: true},
		{Column: "id"},
	}
)

// EmployeeCodec declares the employee list filters:
//
//	?status=active&department=engineering,finance
func EmployeeCodec(config *listview.PageConfig) urlstate.Codec {
	return urlstate.NewCodec(config,
		urlstate.FilterSpec{Key: "status"},
		urlstate.FilterSpec{Key: "department", Multi: true},
	)
}

// ExpenseCodec declares the expense list filters:
//
//	?employee=<id>&status=pending,approved&category=travel
func ExpenseCodec(config *listview.PageConfig) urlstate.Codec {
	return urlstate.NewCodec(config,
		urlstate.FilterSpec{Key: "employee"},
		urlstate.FilterSpec{Key: "status", Multi: true},
		urlstate.FilterSpec{Key: "category", Multi: true},
	)
}

// EmployeeFetcher returns a storage Fetcher over the employees table.
func (r *Repository) EmployeeFetcher() listview.Fetcher[*Employee] {
	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*Employee, error) {
			return r.Employees(mods...).All(ctx, r.exec)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return r.Employees(mods...).Count(ctx, r.exec)
		},
		sqlboiler.OffsetToQueryMods,
		sqlboiler.WithFilterSchema(employeeFilters),
	)
}

// ExpenseFetcher returns a storage Fetcher over the expenses table.
func (r *Repository) ExpenseFetcher() listview.Fetcher[*Expense] {
	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*Expense, error) {
			return r.Expenses(mods...).All(ctx, r.exec)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return r.Expenses(mods...).Count(ctx, r.exec)
		},
		sqlboiler.OffsetToQueryMods,
		sqlboiler.WithFilterSchema(expenseFilters),
	)
}

// EmployeeList is the paged employee directory.
func (r *Repository) EmployeeList(config *listview.PageConfig) List[*Employee] {
	return List[*Employee]{
		Name:         "employees",
		Codec:        EmployeeCodec(config),
		Sorts:        employeeSorts,
		DefaultOrder: employeeOrder,
		Fetcher:      r.EmployeeFetcher(),
	}
}

// ExpenseList is the paged expense report list, newest first.
func (r *Repository) ExpenseList(config *listview.PageConfig) List[*Expense] {
	return List[*Expense]{
		Name:         "expenses",
		Codec:        ExpenseCodec(config),
		Sorts:        expenseSorts,
		DefaultOrder: expenseOrder,
		Fetcher:      r.ExpenseFetcher(),
	}
}
