// Package offset turns a storage Fetcher into a listview.PageFetcher using
// traditional limit/offset pagination.
//
// A Query on page p with size s becomes FetchParams{Limit: s, Offset: (p-1)*s}.
// The Fetcher's Count gives the total used for TotalPages = ceil(total/s).
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(queryFunc, countFunc, sqlboiler.OffsetToQueryMods)
//	paginator := offset.New(fetcher, offset.WithOrderBy(listview.OrderBy{Column: "last_name"}))
//	page, err := paginator.FetchPage(ctx, query)
package offset

import (
	"context"
	"fmt"
	"time"

	"github.com/nrfta/listview-go"
)

// StrategyName is reported in listview.Metadata.Strategy.
const StrategyName = "offset"

// Paginator is the PageFetcher for offset-based pagination.
type Paginator[T any] struct {
	fetcher listview.Fetcher[T]
	orderBy []listview.OrderBy
	config  *listview.PageConfig
}

// Option configures a Paginator.
type Option func(*options)

type options struct {
	orderBy []listview.OrderBy
	config  *listview.PageConfig
}

// WithOrderBy sets the sort order passed to the Fetcher.
// Without it the Fetcher's own default order applies.
func WithOrderBy(orderBy ...listview.OrderBy) Option {
	return func(o *options) {
		o.orderBy = orderBy
	}
}

// WithPageConfig makes the Paginator replace a page size that is not
// allowed by config with the config's default instead of querying with it.
func WithPageConfig(config *listview.PageConfig) Option {
	return func(o *options) {
		o.config = config
	}
}

// New creates an offset Paginator over fetcher.
func New[T any](fetcher listview.Fetcher[T], opts ...Option) *Paginator[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Paginator[T]{
		fetcher: fetcher,
		orderBy: o.orderBy,
		config:  o.config,
	}
}

// Params converts q into storage parameters.
func Params(q listview.Query, orderBy []listview.OrderBy) listview.FetchParams {
	return listview.FetchParams{
		Limit:   q.PageSize,
		Offset:  q.Offset(),
		Filters: q.Filters(),
		OrderBy: orderBy,
	}
}

// FetchPage counts the matching items and fetches the requested page.
// A page past the end yields no items but still reports the real totals, so
// callers can navigate back into range.
func (p *Paginator[T]) FetchPage(ctx context.Context, q listview.Query) (*listview.Page[T], error) {
	start := time.Now()

	if p.config != nil && !p.config.IsAllowed(q.PageSize) {
		q = q.WithPageSize(p.config.EffectiveDefault())
	}
	if q.Page < 1 {
		q = q.WithPage(1)
	}
	if q.PageSize <= 0 {
		return nil, p.config.Validate(q.PageSize)
	}

	params := Params(q, p.orderBy)

	total, err := p.fetcher.Count(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	items := []T{}
	if int64(params.Offset) < total {
		items, err = p.fetcher.Fetch(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("fetch items (offset %d): %w", params.Offset, err)
		}
	}

	info := listview.NewPageInfo(int(total), q.PageSize, q.Page)

	return &listview.Page[T]{
		Items:      items,
		TotalItems: info.TotalItems,
		TotalPages: info.TotalPages,
		Metadata: listview.Metadata{
			Strategy:    StrategyName,
			QueryTimeMs: time.Since(start).Milliseconds(),
		},
	}, nil
}
