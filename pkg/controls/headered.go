package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/template"
)

// HeaderPartName names the header presenter in a headered template.
const HeaderPartName = "PART_Header"

// HeaderedItemsControl is an items control with a header region above its
// items. The items region is only visible while IsExpanded is set.
type HeaderedItemsControl struct {
	ItemsControl

	Header         *property.Cell[any]
	HeaderTemplate *property.Cell[*template.DataTemplate]
	IsExpanded     *property.Cell[bool]
	// HeaderFocusable makes the header region a focus target.
	HeaderFocusable *property.Cell[bool]

	header ContentHost
	items  *ItemsPresenter
}

// NewHeaderedItemsControl returns an expanded headered control.
func NewHeaderedItemsControl(header any) *HeaderedItemsControl {
	h := &HeaderedItemsControl{}
	h.Init(h)
	h.Header.Set(header)
	return h
}

// Init initializes the control for self.
func (h *HeaderedItemsControl) Init(self core.Element) {
	h.ItemsControl.Init(self)
	h.Header = property.New[any](nil)
	h.HeaderTemplate = property.New[*template.DataTemplate](nil)
	h.IsExpanded = property.New(true)
	h.HeaderFocusable = property.New(false)

	b := h.Bag()
	b.Register("Header", h.Header)
	b.Register("HeaderTemplate", h.HeaderTemplate)
	b.Register("IsExpanded", h.IsExpanded)
	b.Register("HeaderFocusable", h.HeaderFocusable)

	h.Header.AttachFunc(h.pushHeader)
	h.HeaderTemplate.AttachFunc(h.pushHeader)
	h.HeaderFocusable.AttachFunc(h.pushHeader)
	h.IsExpanded.AttachFunc(h.syncExpanded)
}

// NewInstance implements core.Element.
func (h *HeaderedItemsControl) NewInstance() core.Element { return NewHeaderedItemsControl(nil) }

// DefaultTemplate stacks the header presenter above the items presenter.
func (h *HeaderedItemsControl) DefaultTemplate() *template.ControlTemplate {
	header := NewContentPresenter()
	header.Name.Set(HeaderPartName)
	return template.NewControlTemplate(NewStackPanel(Vertical, header, NewItemsPresenter()))
}

// OnApplyTemplate locates the header and items regions.
func (h *HeaderedItemsControl) OnApplyTemplate() {
	h.ItemsControl.OnApplyTemplate()
	root := h.TemplateRoot()
	h.header = nil
	if el := findInTemplate(root, func(el core.Element) bool {
		_, ok := el.(ContentHost)
		return ok && el.Framework().Name.Get() == HeaderPartName
	}); el != nil {
		h.header = el.(ContentHost)
	}
	h.items = h.itemsPresenter()
	h.pushHeader()
	h.syncExpanded()
}

// HeaderRegion returns the header presenter, or nil.
func (h *HeaderedItemsControl) HeaderRegion() core.Element {
	if h.header == nil {
		return nil
	}
	return h.header
}

// ItemsRegion returns the items presenter, or nil.
func (h *HeaderedItemsControl) ItemsRegion() core.Element {
	if h.items == nil {
		return nil
	}
	return h.items
}

func (h *HeaderedItemsControl) pushHeader() {
	if h.header == nil {
		return
	}
	h.header.SetPresentedContent(h.Header.Get(), h.HeaderTemplate.Get())
	h.header.Framework().Focusable.Set(h.HeaderFocusable.Get())
}

func (h *HeaderedItemsControl) syncExpanded() {
	if h.items != nil {
		h.items.Visible.Set(h.IsExpanded.Get())
	}
}

// PredictFocus implements core.Element: the visible region is asked first
// (items when expanded, header otherwise), then the other one.
func (h *HeaderedItemsControl) PredictFocus(focused geometry.Rect, dir focus.Direction, strict bool) core.Element {
	if !h.IsVisible() {
		return nil
	}
	if h.header == nil && h.items == nil {
		return h.ItemsControl.PredictFocus(focused, dir, strict)
	}
	first, second := h.HeaderRegion(), h.ItemsRegion()
	if h.IsExpanded.Get() {
		first, second = second, first
	}
	for _, region := range []core.Element{first, second} {
		if region == nil {
			continue
		}
		if m := region.PredictFocus(focused, dir, strict); m != nil {
			return m
		}
	}
	return nil
}
