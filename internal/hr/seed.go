package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/google/uuid"

	"github.com/nrfta/listview-go/internal/storage"
)

// Departments an employee can belong to.
var Departments = []string{"engineering", "finance", "people", "sales", "support"}

// ExpenseCategories an expense can be filed under.
var ExpenseCategories = []string{"equipment", "meals", "software", "training", "travel"}

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Barbara", "Ken", "Margaret", "Dennis", "Frances", "Edsger", "Radia", "Linus", "Hedy"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Liskov", "Thompson", "Hamilton", "Ritchie", "Allen", "Dijkstra", "Perlman", "Torvalds", "Lamarr"}
	titles     = []string{"Analyst", "Engineer", "Manager", "Specialist", "Director"}
)

// Seeder inserts generated employees and expenses.
type Seeder struct {
	exec    boil.ContextExecutor
	dialect drivers.Dialect
	now     time.Time
}

// NewSeeder returns a Seeder writing through exec.
func NewSeeder(exec boil.ContextExecutor, dialect drivers.Dialect) *Seeder {
	return &Seeder{exec: exec, dialect: dialect, now: time.Now().UTC()}
}

// Employees inserts count employees and returns their IDs in insertion order.
// Employee i works in Departments[i%5]; every 7th is on leave and every 11th terminated.
func (s *Seeder) Employees(ctx context.Context, count int) ([]string, error) {
	query := storage.Rebind(s.dialect, `
		INSERT INTO employees (id, first_name, last_name, email, department, title, status, hired_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	ids := make([]string, count)
	for i := 0; i < count; i++ {
		id := uuid.New().String()

		status := StatusActive
		switch {
		case (i+1)%11 == 0:
			status = StatusTerminated
		case (i+1)%7 == 0:
			status = StatusOnLeave
		}

		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		hiredOn := s.now.AddDate(0, 0, -(count-i)*3).Format(time.DateOnly)

		_, err := s.exec.ExecContext(ctx, query,
			id,
			first,
			last,
			fmt.Sprintf("employee%d@example.com", i+1),
			Departments[i%len(Departments)],
			titles[i%len(titles)],
			status,
			hiredOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed employee %d: %w", i, err)
		}

		ids[i] = id
	}

	return ids, nil
}

// Expenses inserts perEmployee expenses for each employee and returns their IDs.
func (s *Seeder) Expenses(ctx context.Context, employeeIDs []string, perEmployee int) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("no employee IDs provided")
	}

	query := storage.Rebind(s.dialect, `
		INSERT INTO expenses (id, employee_id, category, status, amount_cents, description, submitted_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	statuses := []string{ExpensePending, ExpenseApproved, ExpenseRejected, ExpensePaid}
	ids := make([]string, 0, len(employeeIDs)*perEmployee)

	for _, employeeID := range employeeIDs {
		for i := 0; i < perEmployee; i++ {
			n := len(ids)
			id := uuid.New().String()
			category := ExpenseCategories[n%len(ExpenseCategories)]

			_, err := s.exec.ExecContext(ctx, query,
				id,
				employeeID,
				category,
				statuses[n%len(statuses)],
				int64(1500+(n%40)*725),
				fmt.Sprintf("%s expense %d for %s", category, i+1, employeeID[:8]),
				s.now.AddDate(0, 0, -n).Format(time.DateOnly),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to seed expense %d for employee %s: %w", i, employeeID, err)
			}

			ids = append(ids, id)
		}
	}

	return ids, nil
}
