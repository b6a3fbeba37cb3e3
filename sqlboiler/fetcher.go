// Package sqlboiler provides adapters for integrating SQLBoiler with listview.
//
// This package provides a generic Fetcher[T] implementation that works with
// SQLBoiler-generated models or hand-built queries.Query values, plus the
// query builders that turn FetchParams into query mods: OffsetToQueryMods for
// limit/offset/order and FilterSchema for the list filters.
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Employee, error) {
//	        return models.Employees(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Employees(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.OffsetToQueryMods,
//	    sqlboiler.WithFilterSchema(sqlboiler.FilterSchema{
//	        "status":     "status",
//	        "department": "department",
//	    }),
//	)
//
//	paginator := offset.New(fetcher)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/listview-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Employee).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements listview.Fetcher[T] for SQLBoiler queries.
// Filter mods are shared by Fetch and Count so the total always matches
// the rows that can be paged through.
type Fetcher[T any] struct {
	queryFunc   QueryFunc[T]
	countFunc   CountFunc
	queryModsFn func(listview.FetchParams) []qm.QueryMod
	schema      FilterSchema
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	schema FilterSchema
}

// WithFilterSchema translates FetchParams.Filters into WHERE clauses using schema.
// Without a schema filters are ignored.
func WithFilterSchema(schema FilterSchema) FetcherOption {
	return func(c *fetcherConfig) {
		c.schema = schema
	}
}

// NewFetcher creates a new SQLBoiler fetcher.
//
// Parameters:
//   - queryFunc: Function that executes SQLBoiler queries with query mods
//   - countFunc: Function that counts total records with query mods
//   - queryModsFn: Function converting FetchParams to paging mods (usually OffsetToQueryMods)
//   - opts: Optional filter schema
func NewFetcher[T any](
	queryFunc QueryFunc[T],
	countFunc CountFunc,
	queryModsFn func(listview.FetchParams) []qm.QueryMod,
	opts ...FetcherOption,
) listview.Fetcher[T] {
	cfg := &fetcherConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Fetcher[T]{
		queryFunc:   queryFunc,
		countFunc:   countFunc,
		queryModsFn: queryModsFn,
		schema:      cfg.schema,
	}
}

// Fetch retrieves one page of items: filter mods followed by the paging mods.
func (f *Fetcher[T]) Fetch(ctx context.Context, params listview.FetchParams) ([]T, error) {
	mods := f.schema.QueryMods(params.Filters)
	mods = append(mods, f.queryModsFn(params)...)
	return f.queryFunc(ctx, mods...)
}

// Count returns the total number of items matching the filters.
func (f *Fetcher[T]) Count(ctx context.Context, params listview.FetchParams) (int64, error) {
	return f.countFunc(ctx, f.schema.QueryMods(params.Filters)...)
}
