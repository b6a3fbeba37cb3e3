// Package window computes the page controls of a paginated list: the first
// and last page, a run of pages around the current one, and ellipsis tokens
// for the collapsed ranges in between.
//
// For current=7, total=20, radius=2 the window is
//
//	1 …(1,5) 5 6 7 8 9 …(9,20) 20
//
// Clicking an ellipsis jumps to the midpoint of the pages it hides.
package window

import "fmt"

// DefaultRadius is the number of neighbours shown on each side of the current page.
const DefaultRadius = 2

// Mode selects how Calculator treats input outside [1, total].
type Mode int

const (
	// ModeStrict panics with a *RangeError on degenerate input.
	ModeStrict Mode = iota

	// ModeClamp clamps total to >= 0 and current into [1, total].
	ModeClamp
)

// RangeError describes degenerate window input.
type RangeError struct {
	Current int
	Total   int
	Radius  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("window: current page %d outside [1, %d] (radius %d)", e.Current, e.Total, e.Radius)
}

// Calculator computes page windows. The zero value uses radius 0 in strict
// mode; use New for the default radius.
type Calculator struct {
	Radius int
	Mode   Mode
}

// New returns a strict Calculator with DefaultRadius.
func New() Calculator {
	return Calculator{Radius: DefaultRadius}
}

// Compute returns the window for current within total pages using a strict
// Calculator with the given radius. It panics with a *RangeError when total
// is negative, radius is negative, or current is outside [1, total] for a
// non-empty list.
func Compute(current, total, radius int) []PageToken {
	return Calculator{Radius: radius}.Window(current, total)
}

// Window returns the tokens for current within total pages.
//
// The result is ascending and contains no duplicate page: page 1 and page
// total are always present, every page within Radius of current is present,
// and each gap of at least one hidden page becomes a single ellipsis. Lists
// short enough that the boundaries and a full window would overlap
// (total <= 2*Radius+3) are rendered without any ellipsis.
func (c Calculator) Window(current, total int) []PageToken {
	current, total, radius := c.normalize(current, total)
	if total == 0 {
		return []PageToken{}
	}

	if total <= 2*radius+3 {
		tokens := make([]PageToken, 0, total)
		for n := 1; n <= total; n++ {
			tokens = append(tokens, Page(n))
		}
		return tokens
	}

	start := max(2, current-radius)
	end := min(total-1, current+radius)

	tokens := make([]PageToken, 0, 2*radius+5)
	tokens = append(tokens, Page(1))
	if start > 2 {
		tokens = append(tokens, Ellipsis(1, start))
	}
	for n := start; n <= end; n++ {
		tokens = append(tokens, Page(n))
	}
	if end < total-1 {
		tokens = append(tokens, Ellipsis(end, total))
	}
	tokens = append(tokens, Page(total))

	return tokens
}

func (c Calculator) normalize(current, total int) (int, int, int) {
	radius := c.Radius
	if c.Mode == ModeClamp {
		radius = max(0, radius)
		total = max(0, total)
		if total == 0 {
			return 0, 0, radius
		}
		return clamp(current, 1, total), total, radius
	}

	if radius < 0 || total < 0 || (total > 0 && (current < 1 || current > total)) {
		panic(&RangeError{Current: current, Total: total, Radius: radius})
	}
	return current, total, radius
}
