package listview

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// FilterValue is the value of a single list filter. It is either a single
// string or an ordered set of strings (multi-select). An empty value means
// the filter is cleared.
//
// Example:
//
//	status := listview.Single("active")
//	depts := listview.Multi("engineering", "finance")
type FilterValue struct {
	values []string
	multi  bool
}

// Single returns a single-valued filter. An empty string yields a cleared value.
func Single(v string) FilterValue {
	if v == "" {
		return FilterValue{}
	}
	return FilterValue{values: []string{v}}
}

// Multi returns a multi-valued filter. Duplicates and empty strings are
// dropped; the first occurrence of each value keeps its position.
func Multi(values ...string) FilterValue {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return FilterValue{values: out, multi: true}
}

// IsMulti reports whether the value was built with Multi.
func (v FilterValue) IsMulti() bool { return v.multi }

// IsEmpty reports whether the filter is cleared.
func (v FilterValue) IsEmpty() bool { return len(v.values) == 0 }

// Value returns the first value, or "" for a cleared filter.
func (v FilterValue) Value() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Values returns a copy of all values in order.
func (v FilterValue) Values() []string {
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// Equal compares kind and values. Order is significant for multi values.
func (v FilterValue) Equal(other FilterValue) bool {
	if v.IsEmpty() && other.IsEmpty() {
		return true
	}
	if v.multi != other.multi || len(v.values) != len(other.values) {
		return false
	}
	for i := range v.values {
		if v.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

func (v FilterValue) String() string {
	if v.multi {
		return "[" + strings.Join(v.values, ",") + "]"
	}
	return v.Value()
}

// Query is the canonical state of a list view: the 1-based page, the page
// size and the active filters.
//
// A Query is a value. The With* methods return a modified copy and never
// touch the receiver, so a Query captured by an in-flight fetch stays stable.
type Query struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of items per page.
	PageSize int

	filters map[string]FilterValue
}

// NewQuery returns a Query on page 1 with the given size and no filters.
func NewQuery(pageSize int) Query {
	return Query{Page: 1, PageSize: pageSize}
}

// WithPage returns a copy of q with Page set to n.
func (q Query) WithPage(n int) Query {
	q.filters = q.cloneFilters()
	q.Page = n
	return q
}

// WithPageSize returns a copy of q with PageSize set to n.
// The page number is left untouched; callers decide whether to reset it.
func (q Query) WithPageSize(n int) Query {
	q.filters = q.cloneFilters()
	q.PageSize = n
	return q
}

// WithFilter returns a copy of q with the filter for key replaced.
// An empty value removes the key.
func (q Query) WithFilter(key string, value FilterValue) Query {
	q.filters = q.cloneFilters()
	if value.IsEmpty() {
		delete(q.filters, key)
		return q
	}
	if q.filters == nil {
		q.filters = make(map[string]FilterValue, 1)
	}
	value.values = value.Values()
	q.filters[key] = value
	return q
}

// WithoutFilters returns a copy of q with every filter removed.
func (q Query) WithoutFilters() Query {
	q.filters = nil
	return q
}

// Filter returns the value for key and whether it is set.
func (q Query) Filter(key string) (FilterValue, bool) {
	v, ok := q.filters[key]
	return v, ok
}

// FilterKeys returns the keys of all active filters in sorted order.
func (q Query) FilterKeys() []string {
	keys := make([]string, 0, len(q.filters))
	for k := range q.filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filters returns a copy of the active filters.
func (q Query) Filters() map[string]FilterValue {
	return q.cloneFilters()
}

// HasFilters reports whether any filter is active.
func (q Query) HasFilters() bool {
	return len(q.filters) > 0
}

// Offset returns the number of items that precede the current page. It
// saturates at math.MaxInt instead of overflowing for very large pages.
func (q Query) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// Equal reports structural equality. Filter insertion order does not matter.
func (q Query) Equal(other Query) bool {
	if q.Page != other.Page || q.PageSize != other.PageSize {
		return false
	}
	if len(q.filters) != len(other.filters) {
		return false
	}
	for k, v := range q.filters {
		ov, ok := other.filters[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (q Query) String() string {
	var b strings.Builder
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString(" pageSize=")
	b.WriteString(strconv.Itoa(q.PageSize))
	for _, k := range q.FilterKeys() {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(q.filters[k].String())
	}
	return b.String()
}

func (q Query) cloneFilters() map[string]FilterValue {
	if len(q.filters) == 0 {
		return nil
	}
	out := make(map[string]FilterValue, len(q.filters))
	for k, v := range q.filters {
		out[k] = v
	}
	return out
}
