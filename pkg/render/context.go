package render

import (
	"time"

	"github.com/go-drift/skin/pkg/geometry"
)

// Context carries the accumulated render state down the tree. It is a
// value: elements derive a copy for their subtree and never mutate the
// caller's.
type Context struct {
	// Transform maps element-local coordinates to device pixels.
	Transform geometry.Matrix
	// Opacity is the product of all ancestor opacities.
	Opacity float64
	// Z is the depth of the current element for backends that sort.
	Z float64
	// Now is the frame time.
	Now time.Time
	// Source names the element recording operations, for diagnostics.
	Source string
	// Focused is set while recording the focused element's subtree.
	Focused bool
}

// NewContext returns the root context for a frame.
func NewContext(now time.Time) Context {
	return Context{Transform: geometry.Identity, Opacity: 1, Now: now}
}

// WithTransform returns a copy of c where m is applied before the current
// transform.
func (c Context) WithTransform(m geometry.Matrix) Context {
	c.Transform = m.Multiply(c.Transform)
	return c
}

// WithOpacity returns a copy of c with opacity multiplied in.
func (c Context) WithOpacity(opacity float64) Context {
	c.Opacity *= max(0, min(1, opacity))
	return c
}

// WithSource returns a copy of c attributed to the named element.
func (c Context) WithSource(name string) Context {
	c.Source = name
	return c
}

// Deeper returns a copy of c one z step in front.
func (c Context) Deeper() Context {
	c.Z++
	return c
}
