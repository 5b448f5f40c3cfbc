package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
)

// Border draws a background and frame around a single child.
type Border struct {
	core.FrameworkElement

	Child           *property.Cell[core.Element]
	Background      *property.Cell[render.Brush]
	BorderBrush     *property.Cell[render.Brush]
	BorderThickness *property.Cell[float64]
	Padding         *property.Cell[geometry.Thickness]
}

// NewBorder returns a border around child.
func NewBorder(child core.Element) *Border {
	b := &Border{}
	b.Init(b)
	b.Child.Set(child)
	return b
}

// Init initializes the border for self.
func (b *Border) Init(self core.Element) {
	b.FrameworkElement.Init(self)
	b.Child = property.New[core.Element](nil)
	b.Background = property.New[render.Brush](nil)
	b.BorderBrush = property.New[render.Brush](nil)
	b.BorderThickness = property.New(0.0)
	b.Padding = property.New(geometry.Thickness{})

	bag := b.Bag()
	bag.Register("Child", b.Child)
	bag.Register("Background", b.Background)
	bag.Register("BorderBrush", b.BorderBrush)
	bag.Register("BorderThickness", b.BorderThickness)
	bag.Register("Padding", b.Padding)

	b.Child.Attach(func(old, child core.Element) {
		b.DetachChild(old)
		b.AttachChild(child)
	})
	b.Background.AttachFunc(b.InvalidateRender)
	b.BorderBrush.AttachFunc(b.InvalidateRender)
	b.BorderThickness.AttachFunc(b.Invalidate)
	b.Padding.AttachFunc(b.Invalidate)
}

// NewInstance implements core.Element.
func (b *Border) NewInstance() core.Element { return NewBorder(nil) }

// VisitChildren implements core.Element.
func (b *Border) VisitChildren(visit func(core.Element) bool) {
	if c := b.Child.Get(); c != nil {
		visit(c)
	}
}

func (b *Border) chrome() geometry.Thickness {
	return chrome(b.Padding.Get(), b.BorderThickness.Get(), b.Zoom())
}

// MeasureOverride implements core.Element.
func (b *Border) MeasureOverride(available geometry.Size) geometry.Size {
	ch := b.chrome()
	var size geometry.Size
	if c := b.Child.Get(); c != nil {
		cf := c.Framework()
		cf.Measure(ch.Shrink(available))
		size = cf.DesiredSize()
	}
	return ch.Inflate(size)
}

// ArrangeOverride implements core.Element.
func (b *Border) ArrangeOverride(inner geometry.Rect) {
	if c := b.Child.Get(); c != nil {
		c.Framework().Arrange(inner.Deflate(b.chrome()))
	}
}

// RenderOverride implements core.Element.
func (b *Border) RenderOverride(ctx render.Context, list *render.DisplayList) {
	list.DrawRect(ctx, b.Bounds(), b.Background.Get(), b.BorderBrush.Get(), b.BorderThickness.Get()*b.Zoom())
	b.RenderChildren(ctx, list)
}
