package listview

import "fmt"

// Page is one page of list results as returned by a PageFetcher.
//
// Type parameter T is the item type being listed.
type Page[T any] struct {
	// Items contains the items for this page, at most PageSize of them.
	Items []T

	// TotalItems is the number of items matching the filters across all pages.
	TotalItems int

	// TotalPages is ceil(TotalItems / PageSize); 0 when nothing matches.
	TotalPages int

	// Metadata provides observability and debugging information.
	Metadata Metadata
}

// Metadata provides observability information about how a page was fetched.
type Metadata struct {
	// Strategy identifies the fetch strategy. Values: "offset", "remote".
	Strategy string

	// QueryTimeMs is the total time spent executing storage queries.
	QueryTimeMs int64
}

// Info returns pagination helpers for the page, given the Query it answers.
func (p *Page[T]) Info(q Query) PageInfo {
	if p == nil {
		return NewPageInfo(0, q.PageSize, q.Page)
	}
	return PageInfo{
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// MapPage converts a page of storage models into a page of view models.
// Counts and metadata are carried over unchanged.
//
// Type parameters:
//   - From: Source type (e.g., SQLBoiler model, database row)
//   - To: Target type (e.g., API response item)
//
// Returns the mapped Page or an error if any transformation fails.
//
// Example usage:
//
//	out, err := listview.MapPage(page, func(e *hr.Employee) (employeeDTO, error) {
//	    return toEmployeeDTO(e), nil
//	})
func MapPage[From any, To any](page *Page[From], transform func(From) (To, error)) (*Page[To], error) {
	if page == nil {
		return nil, nil
	}

	out := &Page[To]{
		Items:      make([]To, 0, len(page.Items)),
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Metadata:   page.Metadata,
	}

	for i, item := range page.Items {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}
		out.Items = append(out.Items, transformed)
	}

	return out, nil
}
