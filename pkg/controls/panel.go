package controls

import (
	"math"
	"slices"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
)

// ItemsHost is a panel that accepts generated containers.
type ItemsHost interface {
	core.Element
	SetItems(items []core.Element)
	Children() []core.Element
}

// Orientation is the stacking direction of a panel.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

// Panel owns an ordered list of children and overlays them. Directional
// focus among its children is ranked by distance from the focused element.
type Panel struct {
	core.FrameworkElement

	Background *property.Cell[render.Brush]
	// IsItemsHost marks a panel filled by an items control. Generated
	// children are not copied with the panel.
	IsItemsHost *property.Cell[bool]

	children []core.Element
}

// NewPanel returns an empty overlay panel.
func NewPanel(children ...core.Element) *Panel {
	p := &Panel{}
	p.Init(p)
	p.Add(children...)
	return p
}

// Init initializes the panel for self.
func (p *Panel) Init(self core.Element) {
	p.FrameworkElement.Init(self)
	p.Background = property.New[render.Brush](nil)
	p.IsItemsHost = property.New(false)
	p.Bag().Register("Background", p.Background)
	p.Bag().Register("IsItemsHost", p.IsItemsHost)
	p.Background.AttachFunc(p.InvalidateRender)
}

// NewInstance implements core.Element.
func (p *Panel) NewInstance() core.Element { return NewPanel() }

// Children returns the panel's children. The slice must not be modified.
func (p *Panel) Children() []core.Element {
	return p.children
}

// Add appends children.
func (p *Panel) Add(children ...core.Element) {
	for _, c := range children {
		if c == nil {
			continue
		}
		p.children = append(p.children, c)
		p.AttachChild(c)
	}
}

// Remove detaches child. Unknown children are ignored.
func (p *Panel) Remove(child core.Element) {
	i := slices.Index(p.children, child)
	if i < 0 {
		return
	}
	p.children = slices.Delete(p.children, i, i+1)
	p.DetachChild(child)
}

// SetChildren replaces all children at once: the old ones are detached
// and the new ones attached before a single arrange is requested.
func (p *Panel) SetChildren(children []core.Element) {
	old := p.children
	p.children = slices.DeleteFunc(slices.Clone(children), func(c core.Element) bool { return c == nil })
	for _, c := range old {
		if !slices.Contains(p.children, c) {
			p.DetachChild(c)
		}
	}
	for _, c := range p.children {
		p.AttachChild(c)
	}
	p.InvalidateArrange()
}

// SetItems implements ItemsHost.
func (p *Panel) SetItems(items []core.Element) {
	p.SetChildren(items)
}

// VisitChildren implements core.Element.
func (p *Panel) VisitChildren(visit func(core.Element) bool) {
	for _, c := range p.children {
		if !visit(c) {
			return
		}
	}
}

// CopyFrom implements core.Copier.
func (p *Panel) CopyFrom(src core.Element, cm *core.CopyManager) {
	sp := src.(interface{ panel() *Panel }).panel()
	if sp.IsItemsHost.Get() {
		return
	}
	for _, c := range sp.children {
		p.Add(cm.Copy(c))
	}
}

func (p *Panel) panel() *Panel { return p }

// RenderOverride implements core.Element.
func (p *Panel) RenderOverride(ctx render.Context, list *render.DisplayList) {
	list.DrawRect(ctx, p.Bounds(), p.Background.Get(), nil, 0)
	p.RenderChildren(ctx, list)
}

// PredictFocus implements core.Element. Among the children's candidates
// the one closest to the focused element wins; the first visited wins ties.
func (p *Panel) PredictFocus(focused geometry.Rect, dir focus.Direction, strict bool) core.Element {
	if !p.IsVisible() {
		return nil
	}
	var best core.Element
	bestDist := math.Inf(1)
	for _, c := range p.children {
		m := c.PredictFocus(focused, dir, strict)
		if m == nil {
			continue
		}
		if d := focus.Distance(m.Bounds(), focused); d < bestDist {
			best, bestDist = m, d
		}
	}
	if best != nil {
		return best
	}
	if focus.Predict(dir, p.Self(), focused, strict) {
		return p.Self()
	}
	return nil
}

// StackPanel lines its children up vertically or horizontally.
type StackPanel struct {
	Panel

	Orientation *property.Cell[Orientation]
	// Spacing is the logical gap between children.
	Spacing *property.Cell[float64]
}

// NewStackPanel returns a stack panel with the given orientation.
func NewStackPanel(o Orientation, children ...core.Element) *StackPanel {
	s := &StackPanel{}
	s.Init(s)
	s.Orientation.Set(o)
	s.Add(children...)
	return s
}

// Init initializes the panel for self.
func (s *StackPanel) Init(self core.Element) {
	s.Panel.Init(self)
	s.Orientation = property.New(Vertical)
	s.Spacing = property.New(0.0)
	s.Bag().Register("Orientation", s.Orientation)
	s.Bag().Register("Spacing", s.Spacing)
	s.Orientation.AttachFunc(s.Invalidate)
	s.Spacing.AttachFunc(s.Invalidate)
}

// NewInstance implements core.Element.
func (s *StackPanel) NewInstance() core.Element { return NewStackPanel(Vertical) }

// MeasureOverride implements core.Element. Children get unbounded space
// along the stacking axis.
func (s *StackPanel) MeasureOverride(available geometry.Size) geometry.Size {
	horizontal := s.Orientation.Get() == Horizontal
	gap := s.Spacing.Get() * s.Zoom()
	constraint := available
	if horizontal {
		constraint.Width = math.Inf(1)
	} else {
		constraint.Height = math.Inf(1)
	}
	var size geometry.Size
	n := 0
	for _, c := range s.children {
		cf := c.Framework()
		cf.Measure(constraint)
		if !cf.IsVisible() {
			continue
		}
		d := cf.DesiredSize()
		if n > 0 {
			d = growAlong(d, gap, horizontal)
		}
		if horizontal {
			size.Width += d.Width
			size.Height = max(size.Height, d.Height)
		} else {
			size.Height += d.Height
			size.Width = max(size.Width, d.Width)
		}
		n++
	}
	return size
}

// ArrangeOverride implements core.Element.
func (s *StackPanel) ArrangeOverride(inner geometry.Rect) {
	horizontal := s.Orientation.Get() == Horizontal
	gap := s.Spacing.Get() * s.Zoom()
	x, y := inner.X, inner.Y
	n := 0
	for _, c := range s.children {
		cf := c.Framework()
		if !cf.IsVisible() {
			cf.Arrange(geometry.Rect{X: x, Y: y})
			continue
		}
		if n > 0 {
			if horizontal {
				x += gap
			} else {
				y += gap
			}
		}
		d := cf.DesiredSize()
		if horizontal {
			cf.Arrange(geometry.Rect{X: x, Y: y, Width: d.Width, Height: inner.Height})
			x += d.Width
		} else {
			cf.Arrange(geometry.Rect{X: x, Y: y, Width: inner.Width, Height: d.Height})
			y += d.Height
		}
		n++
	}
}

func growAlong(s geometry.Size, by float64, horizontal bool) geometry.Size {
	if horizontal {
		s.Width += by
	} else {
		s.Height += by
	}
	return s
}

// WrapPanel flows children in lines and starts a new line when the next
// child does not fit. Media grids use it.
type WrapPanel struct {
	Panel

	Orientation *property.Cell[Orientation]
	// ItemWidth and ItemHeight, when non-zero, give every child the same
	// logical slot size.
	ItemWidth  *property.Cell[float64]
	ItemHeight *property.Cell[float64]
}

// NewWrapPanel returns a wrap panel flowing in o.
func NewWrapPanel(o Orientation, children ...core.Element) *WrapPanel {
	w := &WrapPanel{}
	w.Init(w)
	w.Orientation.Set(o)
	w.Add(children...)
	return w
}

// Init initializes the panel for self.
func (w *WrapPanel) Init(self core.Element) {
	w.Panel.Init(self)
	w.Orientation = property.New(Horizontal)
	w.ItemWidth = property.New(0.0)
	w.ItemHeight = property.New(0.0)
	w.Bag().Register("Orientation", w.Orientation)
	w.Bag().Register("ItemWidth", w.ItemWidth)
	w.Bag().Register("ItemHeight", w.ItemHeight)
	w.Orientation.AttachFunc(w.Invalidate)
	w.ItemWidth.AttachFunc(w.Invalidate)
	w.ItemHeight.AttachFunc(w.Invalidate)
}

// NewInstance implements core.Element.
func (w *WrapPanel) NewInstance() core.Element { return NewWrapPanel(Horizontal) }

// slot returns the size a child occupies.
func (w *WrapPanel) slot(c core.Element) geometry.Size {
	d := c.Framework().DesiredSize()
	zoom := w.Zoom()
	if iw := w.ItemWidth.Get(); iw > 0 {
		d.Width = iw * zoom
	}
	if ih := w.ItemHeight.Get(); ih > 0 {
		d.Height = ih * zoom
	}
	return d
}

// flow calls place for each visible child with its position relative to
// the panel origin and returns the extent used.
func (w *WrapPanel) flow(limit geometry.Size, place func(c core.Element, at geometry.Point, slot geometry.Size)) geometry.Size {
	horizontal := w.Orientation.Get() == Horizontal
	var u, v, lineThickness, extentU float64 // u along the line, v across lines
	for _, c := range w.children {
		if !c.IsVisible() {
			continue
		}
		s := w.slot(c)
		length, thickness := s.Height, s.Width
		lineLimit := limit.Height
		if horizontal {
			length, thickness = s.Width, s.Height
			lineLimit = limit.Width
		}
		if u > 0 && u+length > lineLimit {
			v += lineThickness
			u, lineThickness = 0, 0
		}
		at := geometry.Point{X: v, Y: u}
		if horizontal {
			at = geometry.Point{X: u, Y: v}
		}
		place(c, at, s)
		u += length
		extentU = math.Max(extentU, u)
		lineThickness = math.Max(lineThickness, thickness)
	}
	if horizontal {
		return geometry.Size{Width: extentU, Height: v + lineThickness}
	}
	return geometry.Size{Width: v + lineThickness, Height: extentU}
}

// MeasureOverride implements core.Element.
func (w *WrapPanel) MeasureOverride(available geometry.Size) geometry.Size {
	zoom := w.Zoom()
	for _, c := range w.children {
		constraint := available
		if iw := w.ItemWidth.Get(); iw > 0 {
			constraint.Width = iw * zoom
		}
		if ih := w.ItemHeight.Get(); ih > 0 {
			constraint.Height = ih * zoom
		}
		c.Framework().Measure(constraint)
	}
	return w.flow(available, func(core.Element, geometry.Point, geometry.Size) {})
}

// ArrangeOverride implements core.Element.
func (w *WrapPanel) ArrangeOverride(inner geometry.Rect) {
	w.flow(inner.Size(), func(c core.Element, at geometry.Point, s geometry.Size) {
		c.Framework().Arrange(geometry.RectFromPointSize(inner.Position().Add(at), s))
	})
}
