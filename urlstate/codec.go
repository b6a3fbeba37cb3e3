// Package urlstate serializes a list Query to and from a URL query string
// and persists it through an abstract key-value Store.
//
// The query-string contract:
//
//	page=3&pageSize=25&status=active&department=engineering,finance
//
// page and pageSize fall back to their defaults when absent or malformed,
// single filters hold one value, multi filters hold a comma-separated list,
// and cleared filters are removed from the string instead of being set to "".
package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nrfta/listview-go"
)

const (
	// ParamPage is the query-string key of the 1-based page number.
	ParamPage = "page"

	// ParamPageSize is the query-string key of the page size.
	ParamPageSize = "pageSize"
)

// FilterSpec declares one filter key of a list.
type FilterSpec struct {
	Key string

	// Multi marks a multi-select filter serialized as a comma-separated list.
	Multi bool
}

// Codec maps between url.Values and listview.Query for one list.
//
// Example:
//
//	codec := urlstate.NewCodec(listview.NewPageConfig(),
//	    urlstate.FilterSpec{Key: "status"},
//	    urlstate.FilterSpec{Key: "department", Multi: true},
//	)
//	q := codec.Decode(r.URL.Query())
type Codec struct {
	Config  *listview.PageConfig
	Filters []FilterSpec
}

// NewCodec returns a Codec for the given page config and filters.
// A nil config means listview.NewPageConfig().
func NewCodec(config *listview.PageConfig, filters ...FilterSpec) Codec {
	if config == nil {
		config = listview.NewPageConfig()
	}
	return Codec{Config: config, Filters: filters}
}

// Default returns the Query used when the URL carries no state.
func (c Codec) Default() listview.Query {
	return c.Config.DefaultQuery()
}

// Spec returns the declaration of key.
func (c Codec) Spec(key string) (FilterSpec, bool) {
	for _, f := range c.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return FilterSpec{}, false
}

// Decode reads a Query from values. It never fails: every malformed field
// falls back to its default independently of the others, and undeclared keys
// are ignored.
func (c Codec) Decode(values url.Values) listview.Query {
	q := c.Default()

	if page, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && page > 0 {
		q = q.WithPage(page)
	}

	if size, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPageSize))); err == nil && c.Config.IsAllowed(size) {
		q = q.WithPageSize(size)
	}

	for _, f := range c.Filters {
		raw := values.Get(f.Key)
		if f.Multi {
			q = q.WithFilter(f.Key, listview.Multi(splitTokens(raw)...))
			continue
		}
		q = q.WithFilter(f.Key, listview.Single(strings.TrimSpace(raw)))
	}

	return q
}

// DecodeString decodes a raw query string. A string that does not parse
// yields the default Query.
func (c Codec) DecodeString(raw string) listview.Query {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return c.Default()
	}
	return c.Decode(values)
}

// Encode writes q as url.Values. Only non-empty filters are present.
func (c Codec) Encode(q listview.Query) url.Values {
	values := url.Values{}
	values.Set(ParamPage, strconv.Itoa(q.Page))
	values.Set(ParamPageSize, strconv.Itoa(q.PageSize))

	for _, key := range q.FilterKeys() {
		v, _ := q.Filter(key)
		values.Set(key, strings.Join(v.Values(), ","))
	}

	return values
}

// Merge returns a copy of base with the keys owned by the list replaced by
// the encoding of q. Keys the list does not own are preserved; owned keys
// that q leaves empty are deleted.
func (c Codec) Merge(base url.Values, q listview.Query) url.Values {
	out := make(url.Values, len(base)+2)
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}

	out.Del(ParamPage)
	out.Del(ParamPageSize)
	for _, f := range c.Filters {
		out.Del(f.Key)
	}

	for k, v := range c.Encode(q) {
		out[k] = v
	}
	return out
}

func splitTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
