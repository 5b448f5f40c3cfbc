package controls

import (
	"fmt"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/template"
)

// ContentHost presents a single piece of content.
type ContentHost interface {
	core.Element
	SetPresentedContent(content any, tpl *template.DataTemplate)
}

// ContentPresenter turns its content into at most one child:
//   - an element is hosted directly;
//   - data with a template (explicit or found in resources by type) is
//     presented by an instance of the template with the data as context;
//   - strings and fmt.Stringer values without a template become a TextBlock;
//   - anything else is inert and renders nothing.
type ContentPresenter struct {
	core.FrameworkElement

	Content         *property.Cell[any]
	ContentTemplate *property.Cell[*template.DataTemplate]

	child core.Element
	// pending is set while data content waits for a template to become
	// reachable through resources.
	pending bool
	// batching holds off presentation while SetPresentedContent updates
	// both properties.
	batching bool
}

// NewContentPresenter returns an empty presenter.
func NewContentPresenter() *ContentPresenter {
	p := &ContentPresenter{}
	p.Init(p)
	return p
}

// Init initializes the presenter for self.
func (p *ContentPresenter) Init(self core.Element) {
	p.FrameworkElement.Init(self)
	p.Content = property.New[any](nil)
	p.ContentTemplate = property.New[*template.DataTemplate](nil)
	p.Bag().Register("Content", p.Content)
	p.Bag().Register("ContentTemplate", p.ContentTemplate)
	p.Content.AttachFunc(p.present)
	p.ContentTemplate.AttachFunc(p.present)
}

// NewInstance implements core.Element.
func (p *ContentPresenter) NewInstance() core.Element { return NewContentPresenter() }

// SetPresentedContent implements ContentHost.
// The content is presented once, with the new template.
func (p *ContentPresenter) SetPresentedContent(content any, tpl *template.DataTemplate) {
	p.batching = true
	p.ContentTemplate.Set(tpl)
	p.Content.Set(content)
	p.batching = false
	p.present()
}

// Child returns the presented element, or nil.
func (p *ContentPresenter) Child() core.Element {
	return p.child
}

func (p *ContentPresenter) present() {
	if p.batching {
		return
	}
	p.pending = false
	child := p.build(p.Content.Get())
	if child == p.child {
		return
	}
	old := p.child
	p.child = child
	p.DetachChild(old)
	if child != nil {
		if cp := child.Framework().Parent(); cp != nil && cp != p.Self() {
			if owner, ok := cp.(interface{ DetachChild(core.Element) }); ok {
				owner.DetachChild(child)
			}
		}
		p.AttachChild(child)
	}
	p.InvalidateArrange()
}

func (p *ContentPresenter) build(content any) core.Element {
	if content == nil {
		return nil
	}
	if el, ok := content.(core.Element); ok {
		return el
	}
	tpl := p.ContentTemplate.Get()
	if tpl == nil {
		tpl = template.FindDataTemplate(p.Self(), content)
	}
	if tpl != nil && tpl.HasContent() && tpl.Matches(content) {
		return tpl.Instantiate(p.Window(), content)
	}
	switch v := content.(type) {
	case string:
		return NewTextBlock(v)
	case fmt.Stringer:
		return NewTextBlock(v.String())
	}
	p.pending = true
	return nil
}

// VisitChildren implements core.Element.
func (p *ContentPresenter) VisitChildren(visit func(core.Element) bool) {
	if p.child != nil {
		visit(p.child)
	}
}

// MeasureOverride implements core.Element. Data content still waiting for
// a template retries the lookup first: the presenter may have been
// attached under new resources since.
func (p *ContentPresenter) MeasureOverride(available geometry.Size) geometry.Size {
	if p.pending {
		p.present()
	}
	return p.FrameworkElement.MeasureOverride(available)
}

// ContentControl is a templated control with a single piece of content.
// Content is pushed to the nearest ContentHost in the control's own
// template; without one the content is inert.
type ContentControl struct {
	Control

	Content         *property.Cell[any]
	ContentTemplate *property.Cell[*template.DataTemplate]
}

// NewContentControl returns a content control showing content.
func NewContentControl(content any) *ContentControl {
	c := &ContentControl{}
	c.Init(c)
	c.Content.Set(content)
	return c
}

// Init initializes the control for self.
func (c *ContentControl) Init(self core.Element) {
	c.Control.Init(self)
	c.Content = property.New[any](nil)
	c.ContentTemplate = property.New[*template.DataTemplate](nil)
	c.Bag().Register("Content", c.Content)
	c.Bag().Register("ContentTemplate", c.ContentTemplate)
	c.Content.AttachFunc(c.pushContent)
	c.ContentTemplate.AttachFunc(c.pushContent)
}

// NewInstance implements core.Element.
func (c *ContentControl) NewInstance() core.Element { return NewContentControl(nil) }

// DefaultTemplate is a lone ContentPresenter.
func (c *ContentControl) DefaultTemplate() *template.ControlTemplate {
	return template.NewControlTemplate(NewContentPresenter())
}

// OnApplyTemplate hands the current content to the new template.
func (c *ContentControl) OnApplyTemplate() {
	c.pushContent()
}

// Presenter returns the ContentHost receiving the content, or nil.
func (c *ContentControl) Presenter() ContentHost {
	if c.TemplateRoot() == nil {
		return nil
	}
	h := findInTemplate(c.TemplateRoot(), func(el core.Element) bool {
		_, ok := el.(ContentHost)
		return ok
	})
	if h == nil {
		return nil
	}
	return h.(ContentHost)
}

func (c *ContentControl) pushContent() {
	if h := c.Presenter(); h != nil {
		h.SetPresentedContent(c.Content.Get(), c.ContentTemplate.Get())
	}
}
