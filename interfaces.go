package listview

import "context"

// PageFetcher is the data source of a list view. It resolves a Query into one
// page of results together with the total counts needed to render page
// controls.
//
// Type parameter T is the item type being listed (e.g., *hr.Employee).
//
// Implementations:
//   - offset.Paginator: adapts a storage Fetcher using limit/offset
//   - PageFetcherFunc: wraps a plain function (HTTP clients, test fakes)
type PageFetcher[T any] interface {
	// FetchPage returns the page described by q. It must not modify q.
	FetchPage(ctx context.Context, q Query) (*Page[T], error)
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
//
// Example:
//
//	fetcher := listview.PageFetcherFunc[*Employee](func(ctx context.Context, q listview.Query) (*listview.Page[*Employee], error) {
//	    return client.ListEmployees(ctx, q)
//	})
type PageFetcherFunc[T any] func(ctx context.Context, q Query) (*Page[T], error)

// FetchPage calls f(ctx, q).
func (f PageFetcherFunc[T]) FetchPage(ctx context.Context, q Query) (*Page[T], error) {
	return f(ctx, q)
}

// Fetcher abstracts database queries for any ORM or database layer.
// This interface allows paginators to work with SQLBoiler, sqlc,
// or raw SQL without being tightly coupled to any specific ORM.
//
// Type parameter T is the database model type (e.g., *hr.Employee).
//
// Example implementation:
//
//	type employeeFetcher struct {
//	    queryFunc func(...qm.QueryMod) ([]*hr.Employee, error)
//	    countFunc func(...qm.QueryMod) (int64, error)
//	}
type Fetcher[T any] interface {
	// Fetch retrieves items from storage based on the given parameters.
	// It should apply limit, offset, ordering, and the filters.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the total number of items matching the filters (without pagination).
	// Limit, Offset and OrderBy must be ignored.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains all parameters needed to fetch a page of data.
// Paginators construct these parameters from a Query.
type FetchParams struct {
	// Limit is the maximum number of items to fetch.
	Limit int

	// Offset is the number of items to skip.
	Offset int

	// Filters contains the active list filters keyed by filter name.
	// Fetchers decide which keys they understand; unknown keys must be ignored.
	Filters map[string]FilterValue

	// OrderBy specifies the sort order for results.
	OrderBy []OrderBy
}

// OrderBy represents a sort directive for query results.
type OrderBy struct {
	// Column is the name of the column to sort by.
	Column string

	// Desc indicates descending order. False means ascending.
	Desc bool
}
