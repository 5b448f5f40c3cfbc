package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/property"
)

// treeContainer builds a TreeViewItem; sub-items of hierarchical data
// become the nested items source.
func treeContainer(owner *ItemsControl, item any) core.Element {
	t := NewTreeViewItem(item)
	t.HeaderTemplate.Set(owner.ItemTemplate.Get())
	t.ItemTemplate.Set(owner.ItemTemplate.Get())
	t.ItemContainerStyle.Set(owner.ItemContainerStyle.Get())
	if sub, ok := data.SubItems(item); ok {
		t.ItemsSource.Set(sub)
	}
	return t
}

// TreeView presents hierarchical data as nested, collapsible items.
type TreeView struct {
	ItemsControl
}

// NewTreeView returns an empty tree view.
func NewTreeView() *TreeView {
	t := &TreeView{}
	t.Init(t)
	return t
}

// Init initializes the tree view for self.
func (t *TreeView) Init(self core.Element) {
	t.ItemsControl.Init(self)
	t.SetContainerFactory(ContainerFactoryFunc(treeContainer))
}

// NewInstance implements core.Element.
func (t *TreeView) NewInstance() core.Element { return NewTreeView() }

// TreeViewItem is one node of a TreeView. Its header is the focus target;
// Right expands and Left collapses while the header has focus.
type TreeViewItem struct {
	HeaderedItemsControl

	IsSelected *property.Cell[bool]
}

// NewTreeViewItem returns a collapsed node with header.
func NewTreeViewItem(header any) *TreeViewItem {
	t := &TreeViewItem{}
	t.Init(t)
	t.Header.Set(header)
	return t
}

// Init initializes the node for self.
func (t *TreeViewItem) Init(self core.Element) {
	t.HeaderedItemsControl.Init(self)
	t.IsSelected = property.New(false)
	t.Bag().Register("IsSelected", t.IsSelected)
	t.IsSelected.AttachFunc(t.InvalidateRender)
	t.IsExpanded.Set(false)
	t.HeaderFocusable.Set(true)
	t.SetContainerFactory(ContainerFactoryFunc(treeContainer))
}

// NewInstance implements core.Element.
func (t *TreeViewItem) NewInstance() core.Element { return NewTreeViewItem(nil) }

// SetSelected sets the selection flag.
func (t *TreeViewItem) SetSelected(selected bool) {
	t.IsSelected.Set(selected)
}

// HasItems reports whether the node's source has any items.
func (t *TreeViewItem) HasItems() bool {
	return len(data.Enumerate(t.ItemsSource.Get())) > 0
}

// OnKeyPressed implements core.Element.
func (t *TreeViewItem) OnKeyPressed(key *input.Key) {
	header := t.HeaderRegion()
	if header != nil && header.Framework().HasFocus() {
		switch {
		case key.Code == input.Right && !t.IsExpanded.Get() && t.HasItems():
			t.IsExpanded.Set(true)
			key.Handled = true
			return
		case key.Code == input.Left && t.IsExpanded.Get():
			t.IsExpanded.Set(false)
			key.Handled = true
			return
		}
	}
	t.HeaderedItemsControl.OnKeyPressed(key)
}
