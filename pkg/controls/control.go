package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/template"
)

// Control is an element whose visual tree comes from a ControlTemplate.
type Control struct {
	core.FrameworkElement

	Template        *property.Cell[*template.ControlTemplate]
	Background      *property.Cell[render.Brush]
	BorderBrush     *property.Cell[render.Brush]
	BorderThickness *property.Cell[float64]
	Padding         *property.Cell[geometry.Thickness]

	templateRoot    core.Element
	templateApplied bool
}

// templated is implemented by every type embedding Control.
type templated interface {
	core.Element
	control() *Control
}

// defaultTemplater supplies the template used when none is set.
type defaultTemplater interface {
	DefaultTemplate() *template.ControlTemplate
}

// templateApplier is notified after a new template root was attached.
type templateApplier interface {
	OnApplyTemplate()
}

// NewControl returns a control without a default template.
func NewControl() *Control {
	c := &Control{}
	c.Init(c)
	return c
}

// Init initializes the control for self.
func (c *Control) Init(self core.Element) {
	c.FrameworkElement.Init(self)
	c.Template = property.New[*template.ControlTemplate](nil)
	c.Background = property.New[render.Brush](nil)
	c.BorderBrush = property.New[render.Brush](nil)
	c.BorderThickness = property.New(0.0)
	c.Padding = property.New(geometry.Thickness{})

	b := c.Bag()
	b.Register("Template", c.Template)
	b.Register("Background", c.Background)
	b.Register("BorderBrush", c.BorderBrush)
	b.Register("BorderThickness", c.BorderThickness)
	b.Register("Padding", c.Padding)

	c.Template.AttachFunc(func() {
		c.templateApplied = false
		c.InvalidateArrange()
	})
	c.Background.AttachFunc(c.InvalidateRender)
	c.BorderBrush.AttachFunc(c.InvalidateRender)
	c.BorderThickness.AttachFunc(c.Invalidate)
	c.Padding.AttachFunc(c.Invalidate)
}

func (c *Control) control() *Control { return c }

// NewInstance implements core.Element.
func (c *Control) NewInstance() core.Element { return NewControl() }

// TemplateRoot returns the realized template root, or nil.
func (c *Control) TemplateRoot() core.Element {
	return c.templateRoot
}

// ApplyTemplate realizes the control's template if it changed since the
// last call. It reports whether a template root is present.
func (c *Control) ApplyTemplate() bool {
	if c.templateApplied {
		return c.templateRoot != nil
	}
	c.templateApplied = true
	if old := c.templateRoot; old != nil {
		c.templateRoot = nil
		c.DetachChild(old)
	}

	tpl := c.Template.Get()
	if tpl == nil {
		if d, ok := c.Self().(defaultTemplater); ok {
			tpl = d.DefaultTemplate()
		}
	}
	if tpl == nil {
		return false
	}
	root := tpl.LoadContent(c.Window())
	if root == nil {
		return false
	}
	c.templateRoot = root
	c.AttachChild(root)
	if a, ok := c.Self().(templateApplier); ok {
		a.OnApplyTemplate()
	}
	return true
}

// VisitChildren implements core.Element: the template root is the only
// visual child.
func (c *Control) VisitChildren(visit func(core.Element) bool) {
	if c.templateRoot != nil {
		visit(c.templateRoot)
	}
}

// MeasureOverride implements core.Element.
func (c *Control) MeasureOverride(available geometry.Size) geometry.Size {
	c.ApplyTemplate()
	pad := c.chrome()
	var size geometry.Size
	if c.templateRoot != nil {
		rf := c.templateRoot.Framework()
		rf.Measure(pad.Shrink(available))
		size = rf.DesiredSize()
	}
	return pad.Inflate(size)
}

// ArrangeOverride implements core.Element.
func (c *Control) ArrangeOverride(inner geometry.Rect) {
	if c.templateRoot != nil {
		c.templateRoot.Framework().Arrange(inner.Deflate(c.chrome()))
	}
}

// RenderOverride implements core.Element.
func (c *Control) RenderOverride(ctx render.Context, list *render.DisplayList) {
	list.DrawRect(ctx, c.Bounds(), c.Background.Get(), c.BorderBrush.Get(), c.BorderThickness.Get()*c.Zoom())
	c.RenderChildren(ctx, list)
}

func (c *Control) chrome() geometry.Thickness {
	return chrome(c.Padding.Get(), c.BorderThickness.Get(), c.Zoom())
}

// chrome is padding plus a uniform border, in device units.
func chrome(padding geometry.Thickness, border, zoom float64) geometry.Thickness {
	t := padding.Scale(zoom)
	bw := border * zoom
	t.Left += bw
	t.Top += bw
	t.Right += bw
	t.Bottom += bw
	return t
}

// findInTemplate searches root's subtree for the first element matching
// pred without entering other templated controls.
func findInTemplate(root core.Element, pred func(core.Element) bool) core.Element {
	var found core.Element
	core.Walk(root, func(el core.Element) bool {
		if found != nil {
			return false
		}
		if pred(el) {
			found = el
			return false
		}
		_, nested := el.(templated)
		return !nested || el == root
	})
	return found
}
