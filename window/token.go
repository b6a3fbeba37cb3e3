package window

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEllipsis is returned when a page token is resolved as an ellipsis.
	ErrNotEllipsis = errors.New("window: token is not an ellipsis")

	// ErrDegenerateEllipsis is returned for an ellipsis that hides no page,
	// i.e. Between[1]-Between[0] < 2.
	ErrDegenerateEllipsis = errors.New("window: ellipsis does not collapse any page")
)

// Kind discriminates page tokens from ellipsis tokens.
type Kind int

const (
	// KindPage is a clickable page number.
	KindPage Kind = iota + 1

	// KindEllipsis stands for a collapsed run of pages.
	KindEllipsis
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindEllipsis:
		return "ellipsis"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PageToken is one control in a rendered page window.
type PageToken struct {
	Kind Kind

	// Number is the 1-based page number of a KindPage token.
	Number int

	// Between holds the visible neighbours of a KindEllipsis token.
	// The hidden pages are Between[0]+1 .. Between[1]-1.
	Between [2]int
}

// Page returns a page token for n.
func Page(n int) PageToken {
	return PageToken{Kind: KindPage, Number: n}
}

// Ellipsis returns an ellipsis token between the visible pages a and b.
func Ellipsis(a, b int) PageToken {
	return PageToken{Kind: KindEllipsis, Between: [2]int{a, b}}
}

// IsEllipsis reports whether t is an ellipsis token.
func (t PageToken) IsEllipsis() bool {
	return t.Kind == KindEllipsis
}

// Target returns the page a click on t navigates to: its number for a page
// token, the midpoint of the collapsed range for an ellipsis.
func (t PageToken) Target(total int) (int, error) {
	if t.Kind == KindPage {
		return t.Number, nil
	}
	return ResolveEllipsisTarget(t, total)
}

func (t PageToken) String() string {
	if t.Kind == KindEllipsis {
		return fmt.Sprintf("…(%d,%d)", t.Between[0], t.Between[1])
	}
	return fmt.Sprintf("%d", t.Number)
}

// ResolveEllipsisTarget returns floor((a+b)/2) for an ellipsis between a and b,
// clamped into [1, total]. Because a and b differ by at least 2 the result is
// strictly between them.
func ResolveEllipsisTarget(token PageToken, total int) (int, error) {
	if token.Kind != KindEllipsis {
		return 0, ErrNotEllipsis
	}

	a, b := token.Between[0], token.Between[1]
	if b-a < 2 {
		return 0, fmt.Errorf("%w: between %d and %d", ErrDegenerateEllipsis, a, b)
	}

	return clamp((a+b)/2, 1, max(1, total)), nil
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
