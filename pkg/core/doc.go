// Package core provides the element tree: the Visual, UIElement and
// FrameworkElement bases every node embeds, the two-pass layout protocol,
// render-tree construction and the element lifecycle.
//
// # Elements
//
// Every node satisfies [Element]. Concrete types embed [FrameworkElement]
// (directly or through another control) and override the hooks they need:
//
//	type Swatch struct {
//	    core.FrameworkElement
//	    Color *property.Cell[render.Color]
//	}
//
//	func NewSwatch() *Swatch {
//	    s := &Swatch{Color: property.New(render.ColorWhite)}
//	    s.Init(s)
//	    s.Bag().Register("Color", s.Color)
//	    return s
//	}
//
//	func (s *Swatch) NewInstance() core.Element { return NewSwatch() }
//
// Init registers the outermost value as the element's self so that base
// methods such as Measure dispatch to the overriding MeasureOverride.
//
// # Layout
//
// Measure computes DesiredSize, Arrange places the element in the slot its
// parent granted. Invalidate marks an arranged element dirty and asks the
// window to schedule it; UpdateLayout re-measures with the last available
// size and only re-arranges when the desired size changed (in which case
// the parent arbitrates) or when an arrange was explicitly requested with
// InvalidateArrange. An unchanged size hands control to the parent's
// UpdateLayout instead.
//
// # Threading
//
// The tree belongs to one UI goroutine. Work produced elsewhere must be
// marshaled through [Window.Post].
package core
