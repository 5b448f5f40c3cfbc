package core

import (
	"fmt"

	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/layout"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
)

// Element is a node in the scene graph.
//
// FrameworkElement implements every method; concrete types override the
// hooks they need. Base methods always dispatch through the self value
// registered with Init, never through the embedded receiver.
type Element interface {
	focus.Candidate

	// Framework returns the embedded FrameworkElement.
	Framework() *FrameworkElement

	// MeasureOverride returns the content-driven size for the given
	// margin-free available size.
	MeasureOverride(available geometry.Size) geometry.Size
	// ArrangeOverride places children inside the element's final inner rect.
	ArrangeOverride(inner geometry.Rect)
	// VisitChildren calls visit for each visual child until it returns false.
	VisitChildren(visit func(child Element) bool)
	// RenderOverride records the element's drawing operations.
	RenderOverride(ctx render.Context, list *render.DisplayList)

	// PredictFocus returns the element inside this subtree that should get
	// focus when moving dir away from focused, or nil.
	PredictFocus(focused geometry.Rect, dir focus.Direction, strict bool) Element
	// OnKeyPressed handles a key delivered to this element.
	OnKeyPressed(key *input.Key)

	// Allocate acquires device resources. Idempotent.
	Allocate()
	// Deallocate releases device resources. Idempotent, safe on elements
	// that were never allocated.
	Deallocate()
	// IsAllocated reports whether device resources are held.
	IsAllocated() bool
	// Reset re-arms the Loaded event for the subtree.
	Reset()

	// NewInstance returns a fresh, default-initialized element of the same
	// concrete type. Deep copy builds on it.
	NewInstance() Element
}

// Visual is the minimal node: the owning window, the data context and the
// parent back-reference. The parent pointer does not own the parent.
type Visual struct {
	self   Element
	parent Element
	window Window
	bag    property.Bag

	// Context is the data context. Descendants without their own context
	// inherit the nearest ancestor's.
	Context *property.Cell[any]
}

// Self returns the outermost element this Visual belongs to.
func (v *Visual) Self() Element {
	return v.self
}

// Parent returns the visual parent, or nil for a root.
func (v *Visual) Parent() Element {
	return v.parent
}

// Window returns the owning window, or nil when detached.
func (v *Visual) Window() Window {
	return v.window
}

// Bag returns the element's named properties.
func (v *Visual) Bag() *property.Bag {
	return &v.bag
}

// DataContext returns the nearest non-nil Context up the parent chain.
func (v *Visual) DataContext() any {
	if c := v.Context.Get(); c != nil {
		return c
	}
	for p := v.parent; p != nil; p = p.Framework().parent {
		if c := p.Framework().Context.Get(); c != nil {
			return c
		}
	}
	return nil
}

// Depth is the number of ancestors.
func (v *Visual) Depth() int {
	d := 0
	for p := v.parent; p != nil; p = p.Framework().parent {
		d++
	}
	return d
}

// UIElement adds identity, visibility, focusability, opacity, transforms,
// triggers, resources and the Initialize/Reset/Allocate/Deallocate
// lifecycle.
type UIElement struct {
	Visual

	Name                  *property.Cell[string]
	Visible               *property.Cell[bool]
	Enabled               *property.Cell[bool]
	Focusable             *property.Cell[bool]
	Focused               *property.Cell[bool] // read-only, written by the window
	Opacity               *property.Cell[float64]
	Margin                *property.Cell[geometry.Thickness]
	RenderTransform       *property.Cell[geometry.Matrix]
	RenderTransformOrigin *property.Cell[geometry.Point]
	LayoutTransform       *property.Cell[geometry.Matrix]
	OpacityMask           *property.Cell[render.Brush]

	triggers      []Trigger
	triggersReady bool
	resources     ResourceDictionary
	handlers      map[string][]handlerEntry
	nextHandler   int
	names         *NameScope
	allocated     bool
	fireLoaded    bool
}

// IsVisible implements focus.Candidate.
func (u *UIElement) IsVisible() bool { return u.Visible.Get() }

// IsEnabled implements focus.Candidate.
func (u *UIElement) IsEnabled() bool { return u.Enabled.Get() }

// IsFocusable implements focus.Candidate.
func (u *UIElement) IsFocusable() bool { return u.Focusable.Get() }

// HasFocus reports whether this element holds the window's focus.
func (u *UIElement) HasFocus() bool { return u.Focused.Get() }

// FrameworkElement adds the layout contract, style application and
// render-tree construction.
type FrameworkElement struct {
	UIElement

	Style               *property.Cell[*Style]
	Width               *property.Cell[float64]
	Height              *property.Cell[float64]
	HorizontalAlignment *property.Cell[layout.HorizontalAlignment]
	VerticalAlignment   *property.Cell[layout.VerticalAlignment]
	Loaded              *property.Cell[Command]
	ActualPosition      *property.Cell[geometry.Point] // read-only
	ActualWidth         *property.Cell[float64]        // read-only
	ActualHeight        *property.Cell[float64]        // read-only

	// Alignment actually applied in Arrange. An explicit size turns Stretch
	// into Center. Recomputed by listeners, never lazily.
	hAlign layout.HorizontalAlignment
	vAlign layout.VerticalAlignment

	desiredSize    geometry.Size
	contentSize    geometry.Size // desired size before the layout transform
	availableSize  geometry.Size
	finalRect      geometry.Rect
	measured       bool
	arrangeValid   bool
	dirty          bool
	arrangePending bool
	counters       LayoutCounters
	bindings       map[string]*data.Binding
	bindingOrder   []string
	bindingsDirty  bool
	mask           *render.MaskContext
	initialized    bool
}

// NewFrameworkElement returns a plain element with no content of its own.
func NewFrameworkElement() *FrameworkElement {
	f := &FrameworkElement{}
	f.Init(f)
	return f
}

// Init creates the element's property cells and registers self as the
// value base methods dispatch through. Every constructor of an embedding
// type must call it exactly once before registering its own properties.
func (f *FrameworkElement) Init(self Element) {
	f.self = self
	f.dirty = true
	f.fireLoaded = true

	f.Style = property.New[*Style](nil)
	f.Context = property.New[any](nil)
	f.Name = property.New("")
	f.Visible = property.New(true)
	f.Enabled = property.New(true)
	f.Focusable = property.New(false)
	f.Focused = property.New(false)
	f.Opacity = property.New(1.0)
	f.Margin = property.New(geometry.Thickness{})
	f.RenderTransform = property.New(geometry.Identity)
	f.RenderTransformOrigin = property.New(geometry.Point{})
	f.LayoutTransform = property.New(geometry.Identity)
	f.OpacityMask = property.New[render.Brush](nil)
	f.Width = property.New(0.0)
	f.Height = property.New(0.0)
	f.HorizontalAlignment = property.New(layout.HorizontalStretch)
	f.VerticalAlignment = property.New(layout.VerticalStretch)
	f.Loaded = property.New[Command](nil)
	f.ActualPosition = property.New(geometry.Point{})
	f.ActualWidth = property.New(0.0)
	f.ActualHeight = property.New(0.0)

	// Style first: a copied element applies its style before local values
	// overwrite what the style set.
	b := &f.bag
	b.Register("Style", f.Style)
	b.Register("Context", f.Context)
	b.Register("Name", f.Name)
	b.Register("IsVisible", f.Visible)
	b.Register("IsEnabled", f.Enabled)
	b.Register("Focusable", f.Focusable)
	b.RegisterReadOnly("HasFocus", f.Focused)
	b.Register("Opacity", f.Opacity)
	b.Register("Margin", f.Margin)
	b.Register("RenderTransform", f.RenderTransform)
	b.Register("RenderTransformOrigin", f.RenderTransformOrigin)
	b.Register("LayoutTransform", f.LayoutTransform)
	b.Register("OpacityMask", f.OpacityMask)
	b.Register("Width", f.Width)
	b.Register("Height", f.Height)
	b.Register("HorizontalAlignment", f.HorizontalAlignment)
	b.Register("VerticalAlignment", f.VerticalAlignment)
	b.Register("Loaded", f.Loaded)
	b.RegisterReadOnly("ActualPosition", f.ActualPosition)
	b.RegisterReadOnly("ActualWidth", f.ActualWidth)
	b.RegisterReadOnly("ActualHeight", f.ActualHeight)

	alignmentChanged := func() {
		f.updateAlignment()
		f.Invalidate()
	}
	f.Width.AttachFunc(alignmentChanged)
	f.Height.AttachFunc(alignmentChanged)
	f.HorizontalAlignment.AttachFunc(alignmentChanged)
	f.VerticalAlignment.AttachFunc(alignmentChanged)
	f.Margin.AttachFunc(f.Invalidate)
	f.LayoutTransform.AttachFunc(f.Invalidate)

	f.Opacity.AttachFunc(f.InvalidateRender)
	f.RenderTransform.AttachFunc(f.InvalidateRender)
	f.RenderTransformOrigin.AttachFunc(f.InvalidateRender)
	f.OpacityMask.AttachFunc(func() {
		f.releaseMask()
		f.InvalidateRender()
	})

	f.Visible.Attach(func(_, visible bool) { f.onVisibilityChanged(visible) })
	f.Enabled.Attach(func(_, enabled bool) {
		if !enabled {
			f.dropFocusWithin()
		}
		f.InvalidateRender()
	})
	f.Focused.Attach(func(_, focused bool) {
		if focused {
			f.FireEvent(EventGotFocus)
			for e := f.self; e != nil; e = e.Framework().Parent() {
				e.Framework().FireEvent(EventFocusWithin)
			}
		} else {
			f.FireEvent(EventLostFocus)
		}
		f.InvalidateRender()
	})
	f.Context.AttachFunc(func() {
		f.invalidateBindings()
		f.Invalidate()
	})
	f.Style.Attach(func(_, s *Style) {
		if s != nil {
			s.Apply(f.self)
		}
	})
	f.updateAlignment()
}

// Framework implements Element.
func (f *FrameworkElement) Framework() *FrameworkElement {
	return f
}

// NewInstance implements Element.
func (f *FrameworkElement) NewInstance() Element {
	return NewFrameworkElement()
}

// Bounds implements focus.Candidate: the actual position and size.
func (f *FrameworkElement) Bounds() geometry.Rect {
	return geometry.Rect{
		X:      f.ActualPosition.Get().X,
		Y:      f.ActualPosition.Get().Y,
		Width:  f.ActualWidth.Get(),
		Height: f.ActualHeight.Get(),
	}
}

// Zoom returns the window zoom, or 1 without a window.
func (f *FrameworkElement) Zoom() float64 {
	if f.window == nil {
		return 1
	}
	return f.window.Metrics().zoom()
}

func (f *FrameworkElement) updateAlignment() {
	f.hAlign = f.HorizontalAlignment.Get()
	if f.hAlign == layout.HorizontalStretch && f.Width.Get() > 0 {
		f.hAlign = layout.HorizontalCenter
	}
	f.vAlign = f.VerticalAlignment.Get()
	if f.vAlign == layout.VerticalStretch && f.Height.Get() > 0 {
		f.vAlign = layout.VerticalCenter
	}
}

// EffectiveAlignment returns the alignment Arrange applies.
func (f *FrameworkElement) EffectiveAlignment() (layout.HorizontalAlignment, layout.VerticalAlignment) {
	return f.hAlign, f.vAlign
}

func (f *FrameworkElement) onVisibilityChanged(visible bool) {
	if visible {
		f.FireEvent(EventVisible)
	} else {
		f.dropFocusWithin()
		f.self.Deallocate()
		f.FireEvent(EventHidden)
	}
	if p := f.parent; p != nil {
		p.Framework().InvalidateArrange()
	} else {
		f.Invalidate()
	}
}

// String returns the concrete type and name, for diagnostics.
func (f *FrameworkElement) String() string {
	if name := f.Name.Get(); name != "" {
		return fmt.Sprintf("%T(%s)", f.self, name)
	}
	return fmt.Sprintf("%T", f.self)
}

// SetParent links f below parent. It does not add f to any children list;
// containers call it from their own child management.
func (f *FrameworkElement) SetParent(parent Element) {
	f.parent = parent
	f.invalidateBindings()
}

// SetWindow propagates w through the subtree.
func (f *FrameworkElement) SetWindow(w Window) {
	f.window = w
	f.self.VisitChildren(func(c Element) bool {
		c.Framework().SetWindow(w)
		return true
	})
}

// Initialize wires triggers for the subtree. It is idempotent and runs
// when an element is realized under a window.
func (f *FrameworkElement) Initialize() {
	if !f.initialized {
		f.initialized = true
		f.setupTriggers()
	}
	f.self.VisitChildren(func(c Element) bool {
		c.Framework().Initialize()
		return true
	})
}

// AttachChild makes child a visual child of f: it sets the parent link,
// propagates the window, initializes the child when f is live and
// requests an arrange of f.
func (f *FrameworkElement) AttachChild(child Element) {
	if child == nil {
		return
	}
	cf := child.Framework()
	cf.SetParent(f.self)
	if f.window != nil {
		cf.SetWindow(f.window)
		if f.initialized {
			cf.Initialize()
		}
	}
	f.InvalidateArrange()
}

// DetachChild undoes AttachChild. Focus inside the child is cleared and
// its resources are released. Children of other parents are ignored.
func (f *FrameworkElement) DetachChild(child Element) {
	if child == nil {
		return
	}
	cf := child.Framework()
	if cf.parent != f.self {
		return
	}
	cf.dropFocusWithin()
	child.Deallocate()
	cf.parent = nil
	cf.SetWindow(nil)
	f.InvalidateArrange()
}

// dropFocusWithin clears the window focus if it lies in this subtree.
func (f *FrameworkElement) dropFocusWithin() {
	if f.window == nil {
		return
	}
	if focused := f.window.FocusedElement(); focused != nil && IsAncestorOrSelf(f.self, focused) {
		f.window.SetFocusedElement(nil)
	}
}
