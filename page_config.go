package listview

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultPageSize is the page size used when none is requested.
const DefaultPageSize = 10

// DefaultAllowedPageSizes returns the page sizes offered by default.
func DefaultAllowedPageSizes() []int {
	return []int{10, 25, 50, 75, 100}
}

// PageConfig holds the page size policy of a list.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := listview.NewPageConfig().WithAllowedSizes(20, 50).WithDefaultSize(20)
//	if err := config.Validate(n); err != nil {
//	    return err
//	}
type PageConfig struct {
	// DefaultSize is the page size used when none is requested
	// or the requested size is not allowed.
	DefaultSize int

	// AllowedSizes is the closed set of page sizes a user may pick.
	AllowedSizes []int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 10
// - AllowedSizes: 10, 25, 50, 75, 100
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize:  DefaultPageSize,
		AllowedSizes: DefaultAllowedPageSizes(),
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithAllowedSizes replaces the allowed page sizes and returns the config for chaining.
// Non-positive and duplicate sizes are dropped and the rest sorted ascending.
func (c *PageConfig) WithAllowedSizes(sizes ...int) *PageConfig {
	out := make([]int, 0, len(sizes))
	for _, s := range sizes {
		if s > 0 && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		slices.Sort(out)
		c.AllowedSizes = out
	}
	return c
}

// EffectiveDefault returns the default size, falling back to the smallest
// allowed size when DefaultSize itself is not allowed.
func (c *PageConfig) EffectiveDefault() int {
	if c == nil {
		c = NewPageConfig()
	}

	if c.DefaultSize > 0 && c.IsAllowed(c.DefaultSize) {
		return c.DefaultSize
	}

	sizes := c.allowed()
	if len(sizes) == 0 {
		return DefaultPageSize
	}
	return sizes[0]
}

// IsAllowed reports whether size is one of the allowed page sizes.
func (c *PageConfig) IsAllowed(size int) bool {
	if c == nil {
		c = NewPageConfig()
	}
	return slices.Contains(c.allowed(), size)
}

// Validate returns a *PageSizeError if size is not an allowed page size.
func (c *PageConfig) Validate(size int) error {
	if c == nil {
		c = NewPageConfig()
	}

	if c.IsAllowed(size) {
		return nil
	}

	return &PageSizeError{
		Requested: size,
		Allowed:   slices.Clone(c.allowed()),
	}
}

// DefaultQuery returns the Query a list starts with: page 1, default size, no filters.
func (c *PageConfig) DefaultQuery() Query {
	return NewQuery(c.EffectiveDefault())
}

func (c *PageConfig) allowed() []int {
	if len(c.AllowedSizes) == 0 {
		return DefaultAllowedPageSizes()
	}
	return c.AllowedSizes
}

// PageSizeError is returned when the requested page size is not one of the allowed sizes.
type PageSizeError struct {
	Requested int
	Allowed   []int
}

func (e *PageSizeError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("requested page size %d is not one of the allowed page sizes [%s]",
		e.Requested, strings.Join(allowed, ", "))
}
