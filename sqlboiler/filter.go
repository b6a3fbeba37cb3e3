package sqlboiler

import (
	"sort"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/listview-go"
)

// FilterSchema maps filter keys to the columns they constrain. Only keys in
// the schema produce SQL; everything else in FetchParams.Filters is ignored.
//
// Example:
//
//	schema := sqlboiler.FilterSchema{
//	    "status":     "employees.status",
//	    "department": "employees.department",
//	}
type FilterSchema map[string]string

// QueryMods returns one WHERE mod per known, non-empty filter in key order.
// A single value becomes "col = ?" and a multi value "col IN ?".
func (s FilterSchema) QueryMods(filters map[string]listview.FilterValue) []qm.QueryMod {
	if len(s) == 0 || len(filters) == 0 {
		return []qm.QueryMod{}
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		if _, ok := s[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	mods := make([]qm.QueryMod, 0, len(keys))
	for _, k := range keys {
		v := filters[k]
		if v.IsEmpty() {
			continue
		}

		column := s[k]
		if v.IsMulti() {
			values := v.Values()
			args := make([]interface{}, len(values))
			for i, value := range values {
				args[i] = value
			}
			mods = append(mods, qm.WhereIn(column+" IN ?", args...))
			continue
		}
		mods = append(mods, qm.Where(column+" = ?", v.Value()))
	}
	return mods
}
