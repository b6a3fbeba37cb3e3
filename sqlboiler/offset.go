package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/listview-go"
)

// OffsetToQueryMods converts FetchParams into SQLBoiler query mods for offset pagination.
// Filters are not handled here; Fetcher prepends them from its FilterSchema.
//
// The conversion follows these rules:
//   - Offset → qm.Offset(n), omitted for the first page
//   - Limit → qm.Limit(n)
//   - OrderBy → qm.OrderBy("col1 DESC, col2")
//
// Example:
//
//	fetcher := sqlboiler.NewFetcher(queryFunc, countFunc, sqlboiler.OffsetToQueryMods)
func OffsetToQueryMods(params listview.FetchParams) []qm.QueryMod {
	mods := make([]qm.QueryMod, 0, 3)

	if params.Offset > 0 {
		mods = append(mods, qm.Offset(params.Offset))
	}

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	if clause := orderByClause(params.OrderBy); clause != "" {
		mods = append(mods, qm.OrderBy(clause))
	}

	return mods
}

// SortSchema whitelists the sort keys a client may request, mapped to columns.
// Sort keys come from URLs and must never reach SQL unmapped.
type SortSchema map[string]string

// OrderBy resolves a client sort key. Unknown or empty keys yield fallback.
// The returned order always ends with the fallback columns that are not
// already sorted on, so pages stay stable when the sort column has ties.
//
// Example:
//
//	sorts := sqlboiler.SortSchema{"name": "last_name", "hired": "hired_on"}
//	orderBy := sorts.OrderBy("hired", true, listview.OrderBy{Column: "id"})
//	// ORDER BY hired_on DESC, id
func (s SortSchema) OrderBy(key string, desc bool, fallback ...listview.OrderBy) []listview.OrderBy {
	column, ok := s[key]
	if !ok || key == "" {
		return fallback
	}

	out := []listview.OrderBy{{Column: column, Desc: desc}}
	for _, o := range fallback {
		if o.Column != column {
			out = append(out, o)
		}
	}
	return out
}

// orderByClause renders OrderBy directives, e.g. "created_at DESC, id".
// Directives with an empty column are skipped.
func orderByClause(orderBy []listview.OrderBy) string {
	parts := make([]string, 0, len(orderBy))
	for _, o := range orderBy {
		if o.Column == "" {
			continue
		}
		if o.Desc {
			parts = append(parts, o.Column+" DESC")
		} else {
			parts = append(parts, o.Column)
		}
	}
	return strings.Join(parts, ", ")
}
