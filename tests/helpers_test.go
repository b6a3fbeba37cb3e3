package tests_test

import (
	"context"
	"fmt"

	"github.com/nrfta/listview-go/internal/hr"
	"github.com/nrfta/listview-go/internal/storage"
)

// SeedEmployees inserts count employees and returns their IDs.
func SeedEmployees(ctx context.Context, db *storage.DB, count int) ([]string, error) {
	return hr.NewSeeder(db, db.Dialect).Employees(ctx, count)
}

// SeedExpenses inserts perEmployee expenses for each employee.
func SeedExpenses(ctx context.Context, db *storage.DB, employeeIDs []string, perEmployee int) ([]string, error) {
	return hr.NewSeeder(db, db.Dialect).Expenses(ctx, employeeIDs, perEmployee)
}

// CleanupTables truncates all test tables.
// Useful for cleanup between tests when sharing a database instance.
func CleanupTables(ctx context.Context, db *storage.DB) error {
	tables := []string{"expenses", "employees"}

	for _, table := range tables {
		query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}
