// Package focus provides the directional focus predicates used for
// remote-control navigation.
//
// Each predicate is a pure function of a candidate, the currently focused
// element's bounds and the strictness flag. Predicates do not rank: the tree
// walk that calls them decides which qualifying candidate wins.
package focus

import "github.com/go-drift/skin/pkg/geometry"

// Direction indicates the focus traversal direction.
type Direction int

const (
	// Up moves focus upward.
	Up Direction = iota

	// Down moves focus downward.
	Down

	// Left moves focus leftward.
	Left

	// Right moves focus rightward.
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Candidate is an element that may receive focus.
type Candidate interface {
	IsVisible() bool
	IsEnabled() bool
	IsFocusable() bool
	// Bounds returns the actual position and size granted by the last arrange.
	Bounds() geometry.Rect
}

// CanFocus applies the hard filters: visible, enabled and focusable.
func CanFocus(c Candidate) bool {
	return c != nil && c.IsVisible() && c.IsEnabled() && c.IsFocusable()
}

// Predict dispatches to the predicate for dir.
func Predict(dir Direction, candidate Candidate, focused geometry.Rect, strict bool) bool {
	switch dir {
	case Up:
		return IsUp(candidate, focused, strict)
	case Down:
		return IsDown(candidate, focused, strict)
	case Left:
		return IsLeft(candidate, focused)
	case Right:
		return IsRight(candidate, focused)
	}
	return false
}

// IsUp reports whether candidate is a target when moving up from focused.
// The candidate must start strictly above; in strict mode its horizontal
// extent must also overlap the focused element's.
func IsUp(candidate Candidate, focused geometry.Rect, strict bool) bool {
	if !CanFocus(candidate) {
		return false
	}
	b := candidate.Bounds()
	if b.Y >= focused.Y {
		return false
	}
	return !strict || OverlapsHorizontally(b, focused)
}

// IsDown reports whether candidate is a target when moving down from focused.
func IsDown(candidate Candidate, focused geometry.Rect, strict bool) bool {
	if !CanFocus(candidate) {
		return false
	}
	b := candidate.Bounds()
	if b.Y <= focused.Y {
		return false
	}
	return !strict || OverlapsHorizontally(b, focused)
}

// IsLeft reports whether candidate starts left of focused. Horizontal moves
// compare positions only, in either mode.
func IsLeft(candidate Candidate, focused geometry.Rect) bool {
	return CanFocus(candidate) && candidate.Bounds().X < focused.X
}

// IsRight reports whether candidate starts right of focused.
func IsRight(candidate Candidate, focused geometry.Rect) bool {
	return CanFocus(candidate) && candidate.Bounds().X > focused.X
}

// OverlapsHorizontally reports whether the horizontal extents of c and f
// overlap. Three cases qualify: c's left edge lies within f, c contains f,
// or c's right edge lies within f. Touching edges count as overlap.
func OverlapsHorizontally(c, f geometry.Rect) bool {
	cRight, fRight := c.Right(), f.Right()
	return (c.X >= f.X && c.X <= fRight) ||
		(c.X <= f.X && cRight >= fRight) ||
		(cRight >= f.X && cRight <= fRight)
}

// Distance is the Euclidean distance between the actual positions of two
// rectangles.
func Distance(a, b geometry.Rect) float64 {
	return geometry.Distance(a.Position(), b.Position())
}
