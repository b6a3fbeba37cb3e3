package listview

// PageInfo describes where a page sits within the full result set.
type PageInfo struct {
	TotalItems int
	TotalPages int
	Page       int
	PageSize   int
}

// NewPageInfo returns a PageInfo with TotalPages computed from the counts.
func NewPageInfo(totalItems, pageSize, page int) PageInfo {
	return PageInfo{
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}
}

// TotalPages returns ceil(totalItems / pageSize), or 0 when either is not positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// HasNextPage reports whether a page follows the current one.
func (p PageInfo) HasNextPage() bool {
	return p.Page < p.TotalPages
}

// HasPreviousPage reports whether a page precedes the current one.
func (p PageInfo) HasPreviousPage() bool {
	return p.Page > 1
}

// IsOutOfRange reports whether Page points past the last page. A page number
// taken from a URL can do this after the data set shrinks.
func (p PageInfo) IsOutOfRange() bool {
	return p.Page > p.TotalPages && p.TotalPages > 0
}
