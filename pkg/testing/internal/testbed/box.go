// Package testbed provides internal test elements for the testing framework.
package testbed

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/render"
)

// Box is a fixed-size colored element. A focusable box counts the Enter
// keys it receives.
type Box struct {
	core.FrameworkElement

	Size    geometry.Size
	Color   render.Color
	Entered int
}

// NewBox returns a box of the given size.
func NewBox(name string, w, h float64) *Box {
	b := &Box{Size: geometry.Size{Width: w, Height: h}, Color: render.ColorWhite}
	b.Init(b)
	b.Name.Set(name)
	return b
}

// NewFocusableBox returns a focusable box.
func NewFocusableBox(name string, w, h float64) *Box {
	b := NewBox(name, w, h)
	b.Focusable.Set(true)
	return b
}

func (b *Box) NewInstance() core.Element { return NewBox("", b.Size.Width, b.Size.Height) }

func (b *Box) MeasureOverride(geometry.Size) geometry.Size {
	return b.Size.Scale(b.Zoom())
}

func (b *Box) RenderOverride(ctx render.Context, list *render.DisplayList) {
	list.DrawRect(ctx, b.Bounds(), render.SolidColorBrush{Color: b.Color}, nil, 0)
}

func (b *Box) OnKeyPressed(key *input.Key) {
	if key.Code == input.Enter {
		b.Entered++
		key.Handled = true
	}
}

// Row lays its children out left to right.
type Row struct {
	core.FrameworkElement

	children []core.Element
}

// NewRow returns a row of children.
func NewRow(children ...core.Element) *Row {
	r := &Row{}
	r.Init(r)
	for _, c := range children {
		r.children = append(r.children, c)
		r.AttachChild(c)
	}
	return r
}

func (r *Row) NewInstance() core.Element { return NewRow() }

func (r *Row) VisitChildren(visit func(core.Element) bool) {
	for _, c := range r.children {
		if !visit(c) {
			return
		}
	}
}

func (r *Row) MeasureOverride(available geometry.Size) geometry.Size {
	var size geometry.Size
	for _, c := range r.children {
		c.Framework().Measure(available)
		d := c.Framework().DesiredSize()
		size.Width += d.Width
		size.Height = max(size.Height, d.Height)
	}
	return size
}

func (r *Row) ArrangeOverride(inner geometry.Rect) {
	x := inner.X
	for _, c := range r.children {
		d := c.Framework().DesiredSize()
		c.Framework().Arrange(geometry.Rect{X: x, Y: inner.Y, Width: d.Width, Height: inner.Height})
		x += d.Width
	}
}
