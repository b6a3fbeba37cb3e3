// Package storage opens the HR database and creates its schema. PostgreSQL
// (lib/pq) is used in production; SQLite (modernc) serves local runs and tests.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/aarondl/sqlboiler/v4/drivers"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/nrfta/listview-go/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB is an open database together with the SQL dialect of its driver.
type DB struct {
	*sql.DB
	Driver  string
	Dialect drivers.Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dialect, err := Dialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// One writer; avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return &DB{DB: db, Driver: cfg.Driver, Dialect: dialect}, nil
}

// Dialect returns the SQLBoiler dialect of a driver.
func Dialect(driver string) (drivers.Dialect, error) {
	switch driver {
	case DriverPostgres:
		return drivers.Dialect{
			LQ:                   '"',
			RQ:                   '"',
			UseIndexPlaceholders: true,
			UseDefaultKeyword:    true,
		}, nil
	case DriverSQLite:
		return drivers.Dialect{
			LQ: '"',
			RQ: '"',
		}, nil
	default:
		return drivers.Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites "?" placeholders to "$n" for dialects that use index placeholders.
func Rebind(dialect drivers.Dialect, query string) string {
	if !dialect.UseIndexPlaceholders {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id VARCHAR(36) PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		department VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL,
		hired_on VARCHAR(10) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id VARCHAR(36) PRIMARY KEY,
		employee_id VARCHAR(36) NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		category VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL,
		amount_cents BIGINT NOT NULL,
		description TEXT NOT NULL,
		submitted_on VARCHAR(10) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_name ON employees(last_name, first_name, id)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department)`,
	`CREATE INDEX IF NOT EXISTS idx_employees_status ON employees(status)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_submitted_on ON expenses(submitted_on DESC, id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_employee_id ON expenses(employee_id)`,
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}

// Truncate removes every row, children first.
func Truncate(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"expenses", "employees"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
