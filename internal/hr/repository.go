package hr

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

// ErrNotFound is returned when a record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Repository reads HR records.
type Repository struct {
	exec    boil.ContextExecutor
	dialect drivers.Dialect
}

// NewRepository returns a Repository that renders SQL in dialect and runs it on exec.
func NewRepository(exec boil.ContextExecutor, dialect drivers.Dialect) *Repository {
	return &Repository{exec: exec, dialect: dialect}
}

type tableQuery[T any] struct {
	*queries.Query
	table   string
	columns []string
}

// Employees returns a query against the employees table.
func (r *Repository) Employees(mods ...qm.QueryMod) tableQuery[*Employee] {
	return newTableQuery[*Employee](&r.dialect, employeeTable, employeeColumns, mods)
}

// Expenses returns a query against the expenses table.
func (r *Repository) Expenses(mods ...qm.QueryMod) tableQuery[*Expense] {
	return newTableQuery[*Expense](&r.dialect, expenseTable, expenseColumns, mods)
}

func newTableQuery[T any](dialect *drivers.Dialect, table string, columns []string, mods []qm.QueryMod) tableQuery[T] {
	q := &queries.Query{}
	queries.SetDialect(q, dialect)
	queries.SetFrom(q, table)
	queries.SetSelect(q, columns)
	qm.Apply(q, mods...)

	return tableQuery[T]{Query: q, table: table, columns: columns}
}

// All returns every record matched by the query.
func (q tableQuery[T]) All(ctx context.Context, exec boil.ContextExecutor) ([]T, error) {
	var out []T
	if err := q.Bind(ctx, exec, &out); err != nil {
		return nil, fmt.Errorf("hr: failed to select from %s: %w", q.table, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Count returns the number of records matched by the query.
func (q tableQuery[T]) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	if err := q.QueryRowContext(ctx, exec).Scan(&count); err != nil {
		return 0, fmt.Errorf("hr: failed to count %s rows: %w", q.table, err)
	}
	return count, nil
}

// EmployeeByID returns one employee.
func (r *Repository) EmployeeByID(ctx context.Context, id string) (*Employee, error) {
	employees, err := r.Employees(qm.Where("id = ?", id), qm.Limit(1)).All(ctx, r.exec)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("hr: employee %s: %w", id, ErrNotFound)
	}
	return employees[0], nil
}
