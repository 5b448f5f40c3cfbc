package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
)

// ListView is an items control whose containers are focusable
// ListViewItems with single selection following focus.
type ListView struct {
	ItemsControl
}

// NewListView returns an empty list view.
func NewListView() *ListView {
	l := &ListView{}
	l.Init(l)
	return l
}

// Init initializes the list view for self.
func (l *ListView) Init(self core.Element) {
	l.ItemsControl.Init(self)
	l.SetContainerFactory(ContainerFactoryFunc(func(owner *ItemsControl, item any) core.Element {
		c := NewListViewItem(item)
		c.ContentTemplate.Set(owner.ItemTemplate.Get())
		return c
	}))
}

// NewInstance implements core.Element.
func (l *ListView) NewInstance() core.Element { return NewListView() }

// SelectedItem returns the item of the selected container, or nil.
func (l *ListView) SelectedItem() any {
	for i, c := range l.Containers() {
		if item, ok := c.(*ListViewItem); ok && item.IsSelected.Get() {
			return l.Items()[i]
		}
	}
	return nil
}

// ListViewItem is the container of one ListView item.
type ListViewItem struct {
	ContentControl

	IsSelected         *property.Cell[bool]
	SelectedBackground *property.Cell[render.Brush]
}

// NewListViewItem returns a container presenting content.
func NewListViewItem(content any) *ListViewItem {
	li := &ListViewItem{}
	li.Init(li)
	li.Content.Set(content)
	return li
}

// Init initializes the item for self.
func (li *ListViewItem) Init(self core.Element) {
	li.ContentControl.Init(self)
	li.IsSelected = property.New(false)
	li.SelectedBackground = property.New[render.Brush](nil)
	li.Bag().Register("IsSelected", li.IsSelected)
	li.Bag().Register("SelectedBackground", li.SelectedBackground)
	li.IsSelected.AttachFunc(li.InvalidateRender)
	li.SelectedBackground.AttachFunc(li.InvalidateRender)
	li.Focusable.Set(true)
}

// NewInstance implements core.Element.
func (li *ListViewItem) NewInstance() core.Element { return NewListViewItem(nil) }

// SetSelected sets the selection flag.
func (li *ListViewItem) SetSelected(selected bool) {
	li.IsSelected.Set(selected)
}

// RenderOverride implements core.Element.
func (li *ListViewItem) RenderOverride(ctx render.Context, list *render.DisplayList) {
	bg := li.Background.Get()
	if sb := li.SelectedBackground.Get(); sb != nil && li.IsSelected.Get() {
		bg = sb
	}
	list.DrawRect(ctx, li.Bounds(), bg, li.BorderBrush.Get(), li.BorderThickness.Get()*li.Zoom())
	li.RenderChildren(ctx, list)
}
