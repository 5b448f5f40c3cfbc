package controls

import (
	"reflect"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/template"
)

// GenerationState tracks container regeneration of an ItemsControl.
type GenerationState int

const (
	GenerationIdle GenerationState = iota
	GenerationPending
	GenerationRunning
)

func (s GenerationState) String() string {
	switch s {
	case GenerationIdle:
		return "Idle"
	case GenerationPending:
		return "Pending"
	case GenerationRunning:
		return "Regenerating"
	}
	return "Unknown"
}

// ContainerFactory creates the container presenting one item. Every items
// control type installs its factory once, so all items of a control get
// the same container shape regardless of the item's own type.
type ContainerFactory interface {
	CreateContainer(owner *ItemsControl, item any) core.Element
}

// ContainerFactoryFunc adapts a function to ContainerFactory.
type ContainerFactoryFunc func(owner *ItemsControl, item any) core.Element

// CreateContainer implements ContainerFactory.
func (f ContainerFactoryFunc) CreateContainer(owner *ItemsControl, item any) core.Element {
	return f(owner, item)
}

// selectableContainer is a container with a selection flag.
type selectableContainer interface {
	SetSelected(selected bool)
}

// contentContainers wraps each item in a ContentControl.
var contentContainers = ContainerFactoryFunc(func(owner *ItemsControl, item any) core.Element {
	c := NewContentControl(item)
	c.ContentTemplate.Set(owner.ItemTemplate.Get())
	return c
})

// ItemsPresenter marks where an items control places its items panel.
type ItemsPresenter struct {
	core.FrameworkElement

	panel core.Element
}

// NewItemsPresenter returns an empty presenter.
func NewItemsPresenter() *ItemsPresenter {
	p := &ItemsPresenter{}
	p.Init(p)
	return p
}

// NewInstance implements core.Element.
func (p *ItemsPresenter) NewInstance() core.Element { return NewItemsPresenter() }

// Panel returns the hosted items panel, or nil.
func (p *ItemsPresenter) Panel() core.Element {
	return p.panel
}

// SetPanel replaces the hosted panel.
func (p *ItemsPresenter) SetPanel(panel core.Element) {
	if panel == p.panel {
		return
	}
	old := p.panel
	p.panel = panel
	p.DetachChild(old)
	p.AttachChild(panel)
	p.InvalidateArrange()
}

// VisitChildren implements core.Element.
func (p *ItemsPresenter) VisitChildren(visit func(core.Element) bool) {
	if p.panel != nil {
		visit(p.panel)
	}
}

// ItemsControl generates one container per item of ItemsSource and hosts
// them in the panel created from ItemsPanel.
//
// Changes to the source, the item template, the container style or the
// panel only mark the control pending; the next layout or render pass
// regenerates all containers. Regeneration is deferred while the source,
// the panel, or the container style together with an item template (or a
// Template setter) is missing.
type ItemsControl struct {
	Control

	ItemsSource        *property.Cell[any]
	ItemTemplate       *property.Cell[*template.DataTemplate]
	ItemsPanel         *property.Cell[*template.ItemsPanelTemplate]
	ItemContainerStyle *property.Cell[*core.Style]
	CurrentItem        *property.Cell[any] // read-only
	SelectionChanged   *property.Cell[core.Command]

	factory     ContainerFactory
	state       GenerationState
	host        ItemsHost
	items       []any
	containers  []core.Element
	current     core.Element
	unsubscribe func()
	generations int
	// restoreOrdinal is the focused ordinal saved before the panel or
	// template was torn down, or -1.
	restoreOrdinal int
}

// NewItemsControl returns an items control with ContentControl containers
// in a vertical StackPanel.
func NewItemsControl() *ItemsControl {
	ic := &ItemsControl{}
	ic.Init(ic)
	return ic
}

// Init initializes the control for self.
func (ic *ItemsControl) Init(self core.Element) {
	ic.Control.Init(self)
	ic.ItemsSource = property.New[any](nil)
	ic.ItemTemplate = property.New[*template.DataTemplate](nil)
	ic.ItemsPanel = property.New(template.NewItemsPanelTemplate(NewStackPanel(Vertical)))
	ic.ItemContainerStyle = property.New(&core.Style{})
	ic.CurrentItem = property.New[any](nil)
	ic.SelectionChanged = property.New[core.Command](nil)
	ic.factory = contentContainers
	ic.state = GenerationPending
	ic.restoreOrdinal = -1

	b := ic.Bag()
	b.Register("ItemsSource", ic.ItemsSource)
	b.Register("ItemTemplate", ic.ItemTemplate)
	b.Register("ItemsPanel", ic.ItemsPanel)
	b.Register("ItemContainerStyle", ic.ItemContainerStyle)
	b.RegisterReadOnly("CurrentItem", ic.CurrentItem)
	b.Register("SelectionChanged", ic.SelectionChanged)

	ic.ItemsSource.Attach(func(_, source any) {
		ic.subscribe(source)
		ic.InvalidateItems()
	})
	ic.ItemTemplate.AttachFunc(ic.InvalidateItems)
	ic.ItemContainerStyle.AttachFunc(ic.InvalidateItems)
	ic.ItemsPanel.AttachFunc(func() {
		ic.rememberFocus()
		if p := ic.itemsPresenter(); p != nil {
			p.SetPanel(nil)
		}
		ic.host = nil
		ic.InvalidateItems()
	})
	ic.Template.AttachFunc(func() {
		ic.rememberFocus()
		ic.host = nil
		ic.InvalidateItems()
	})
}

// NewInstance implements core.Element.
func (ic *ItemsControl) NewInstance() core.Element { return NewItemsControl() }

// SetContainerFactory installs the container strategy. Control types call
// it from Init.
func (ic *ItemsControl) SetContainerFactory(f ContainerFactory) {
	ic.factory = f
}

// DefaultTemplate is a lone ItemsPresenter.
func (ic *ItemsControl) DefaultTemplate() *template.ControlTemplate {
	return template.NewControlTemplate(NewItemsPresenter())
}

// OnApplyTemplate forgets the host of the previous template.
func (ic *ItemsControl) OnApplyTemplate() {
	ic.rememberFocus()
	ic.host = nil
	ic.items, ic.containers, ic.current = nil, nil, nil
	ic.state = GenerationPending
}

// State returns the regeneration state.
func (ic *ItemsControl) State() GenerationState {
	return ic.state
}

// Generations counts completed regenerations.
func (ic *ItemsControl) Generations() int {
	return ic.generations
}

// Items returns the items enumerated by the last regeneration.
func (ic *ItemsControl) Items() []any {
	return ic.items
}

// Containers returns the generated containers, parallel to Items.
func (ic *ItemsControl) Containers() []core.Element {
	return ic.containers
}

// Host returns the items panel, or nil before the first regeneration.
func (ic *ItemsControl) Host() ItemsHost {
	return ic.host
}

// ContainerFor returns the container generated for item, or nil.
func (ic *ItemsControl) ContainerFor(item any) core.Element {
	for i, it := range ic.items {
		if sameItem(it, item) {
			return ic.containers[i]
		}
	}
	return nil
}

// InvalidateItems schedules a regeneration.
func (ic *ItemsControl) InvalidateItems() {
	ic.state = GenerationPending
	ic.InvalidateArrange()
}

func (ic *ItemsControl) subscribe(source any) {
	if ic.unsubscribe != nil {
		ic.unsubscribe()
		ic.unsubscribe = nil
	}
	n, ok := source.(data.Notifier)
	if !ok {
		return
	}
	ic.unsubscribe = n.Subscribe(func() {
		if w := ic.Window(); w != nil {
			w.Post(ic.InvalidateItems)
			return
		}
		ic.InvalidateItems()
	})
}

// MeasureOverride implements core.Element.
func (ic *ItemsControl) MeasureOverride(available geometry.Size) geometry.Size {
	ic.ApplyTemplate()
	if ic.state == GenerationPending {
		ic.Regenerate()
	}
	return ic.Control.MeasureOverride(available)
}

// RenderOverride implements core.Element. A regeneration still pending
// (its preconditions were not met at layout time) is retried every frame.
func (ic *ItemsControl) RenderOverride(ctx render.Context, list *render.DisplayList) {
	if ic.state == GenerationPending && ic.Regenerate() {
		ic.InvalidateArrange()
	}
	ic.Control.RenderOverride(ctx, list)
}

func (ic *ItemsControl) canGenerate() bool {
	if ic.ItemsSource.Get() == nil {
		return false
	}
	if ic.ItemsPanel.Get() == nil && ic.host == nil {
		return false
	}
	style := ic.ItemContainerStyle.Get()
	return style != nil && (ic.ItemTemplate.Get() != nil || style.HasSetter("Template"))
}

// Regenerate rebuilds all containers now. It reports false, leaving the
// control pending, when a precondition is not met.
func (ic *ItemsControl) Regenerate() bool {
	if ic.state == GenerationRunning {
		return false
	}
	if !ic.canGenerate() {
		ic.state = GenerationPending
		return false
	}
	ic.state = GenerationRunning
	items := data.Enumerate(ic.ItemsSource.Get())
	if len(items) == 0 {
		if ic.host != nil {
			ic.host.SetItems(nil)
		}
		ic.finish(nil, nil)
		return true
	}

	host := ic.ensureHost()
	if host == nil {
		ic.state = GenerationPending
		return false
	}
	ordinal := ic.focusedOrdinal()
	if ordinal < 0 {
		ordinal = ic.restoreOrdinal
	}
	ic.restoreOrdinal = -1
	containers := make([]core.Element, 0, len(items))
	for _, item := range items {
		containers = append(containers, ic.createContainer(item))
	}
	host.SetItems(containers)
	ic.finish(items, containers)
	ic.restoreFocus(ordinal)
	return true
}

func (ic *ItemsControl) finish(items []any, containers []core.Element) {
	ic.items, ic.containers, ic.current = items, containers, nil
	ic.state = GenerationIdle
	ic.generations++
}

func (ic *ItemsControl) itemsPresenter() *ItemsPresenter {
	if ic.TemplateRoot() == nil {
		return nil
	}
	el := findInTemplate(ic.TemplateRoot(), func(el core.Element) bool {
		_, ok := el.(*ItemsPresenter)
		return ok
	})
	p, _ := el.(*ItemsPresenter)
	return p
}

// ensureHost locates the items panel in the realized template, creating
// it from ItemsPanel the first time.
func (ic *ItemsControl) ensureHost() ItemsHost {
	if ic.host != nil {
		return ic.host
	}
	if !ic.ApplyTemplate() {
		return nil
	}
	if p := ic.itemsPresenter(); p != nil {
		if p.Panel() == nil {
			tpl := ic.ItemsPanel.Get()
			if tpl == nil {
				return nil
			}
			panel := tpl.LoadContent(ic.Window())
			host, ok := panel.(ItemsHost)
			if !ok {
				errors.Reportf("controls.ItemsControl", errors.KindTemplate, ic.String(),
					"items panel %T cannot host items", panel)
				return nil
			}
			if pp, ok := panel.(interface{ panel() *Panel }); ok {
				pp.panel().IsItemsHost.Set(true)
			}
			p.SetPanel(host)
		}
		ic.host, _ = p.Panel().(ItemsHost)
		return ic.host
	}
	el := findInTemplate(ic.TemplateRoot(), func(el core.Element) bool {
		pp, ok := el.(interface{ panel() *Panel })
		return ok && pp.panel().IsItemsHost.Get()
	})
	ic.host, _ = el.(ItemsHost)
	return ic.host
}

func (ic *ItemsControl) createContainer(item any) core.Element {
	c := ic.factory.CreateContainer(ic, item)
	if c == nil {
		c = contentContainers.CreateContainer(ic, item)
	}
	f := c.Framework()
	if _, isElement := item.(core.Element); !isElement {
		f.Context.Set(item)
	}
	if s := ic.ItemContainerStyle.Get(); s != nil {
		f.Style.Set(s)
	}
	if sc, ok := c.(selectableContainer); ok && data.IsSelected(item) {
		sc.SetSelected(true)
	}
	f.AddHandler(core.EventFocusWithin, func() { ic.onContainerFocused(c, item) })
	return c
}

func (ic *ItemsControl) onContainerFocused(c core.Element, item any) {
	if c == ic.current {
		return
	}
	ic.current = c
	ic.CurrentItem.Set(item)
	for _, o := range ic.containers {
		if sc, ok := o.(selectableContainer); ok {
			sc.SetSelected(o == c)
		}
	}
	if cmd := ic.SelectionChanged.Get(); cmd != nil {
		cmd(ic.Self())
	}
}

// focusedOrdinal returns the index of the container holding focus, or -1.
// rememberFocus saves the focused ordinal before the containers are
// detached from the window.
func (ic *ItemsControl) rememberFocus() {
	if o := ic.focusedOrdinal(); o >= 0 {
		ic.restoreOrdinal = o
	}
}

func (ic *ItemsControl) focusedOrdinal() int {
	w := ic.Window()
	if w == nil {
		return -1
	}
	focused := w.FocusedElement()
	if focused == nil {
		return -1
	}
	for i, c := range ic.containers {
		if core.IsAncestorOrSelf(c, focused) {
			return i
		}
	}
	return -1
}

// restoreFocus gives focus back after a regeneration: to the container at
// the previously focused ordinal, else to the first item the source flags
// as selected. Focus held elsewhere is left alone.
func (ic *ItemsControl) restoreFocus(ordinal int) {
	w := ic.Window()
	if w == nil || w.FocusedElement() != nil {
		return
	}
	if ordinal >= 0 && ordinal < len(ic.containers) && focusContainer(ic.containers[ordinal]) {
		return
	}
	for i, item := range ic.items {
		if data.IsSelected(item) && focusContainer(ic.containers[i]) {
			return
		}
	}
}

func focusContainer(c core.Element) bool {
	target := c
	if !focus.CanFocus(c) {
		target = core.FirstFocusable(c)
	}
	return target != nil && target.Framework().TrySetFocus()
}

// SetFocusOnItem focuses the container generated for item.
func (ic *ItemsControl) SetFocusOnItem(item any) bool {
	c := ic.ContainerFor(item)
	return c != nil && focusContainer(c)
}

// OnKeyPressed implements core.Element. Keys reach the control when they
// bubble up unhandled from a focused container.
func (ic *ItemsControl) OnKeyPressed(key *input.Key) {
	idx := ic.focusedOrdinal()
	if idx < 0 {
		return
	}
	last := len(ic.containers) - 1
	target := idx
	switch key.Code {
	case input.Home:
		target = 0
	case input.End:
		target = last
	case input.PageDown:
		target = min(idx+ic.pageSize(), last)
	case input.PageUp:
		target = max(idx-ic.pageSize(), 0)
	default:
		return
	}
	key.Handled = true
	if target != idx {
		focusContainer(ic.containers[target])
	}
}

// pageSize is the number of containers currently inside the control's
// bounds, at least one.
func (ic *ItemsControl) pageSize() int {
	bounds := ic.Bounds()
	n := 0
	for _, c := range ic.containers {
		if !c.Bounds().Intersect(bounds).IsEmpty() {
			n++
		}
	}
	return max(n-1, 1)
}

// sameItem compares items by identity where possible.
func sameItem(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
