package core

import (
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/layout"
)

// LayoutCounters counts layout entry points, for diagnostics and tests.
type LayoutCounters struct {
	Measure      int
	Arrange      int
	UpdateLayout int
}

// Counters returns the layout call counts since creation or the last
// ResetCounters.
func (f *FrameworkElement) Counters() LayoutCounters {
	return f.counters
}

// ResetCounters zeroes the layout call counts.
func (f *FrameworkElement) ResetCounters() {
	f.counters = LayoutCounters{}
}

// DesiredSize is the size computed by the last Measure, margin included.
func (f *FrameworkElement) DesiredSize() geometry.Size {
	return f.desiredSize
}

// AvailableSize is the size passed to the last Measure.
func (f *FrameworkElement) AvailableSize() geometry.Size {
	return f.availableSize
}

// FinalRect is the slot passed to the last Arrange.
func (f *FrameworkElement) FinalRect() geometry.Rect {
	return f.finalRect
}

// IsArrangeValid reports whether the element has been arranged at least
// once.
func (f *FrameworkElement) IsArrangeValid() bool {
	return f.arrangeValid
}

// NeedsLayout reports whether UpdateLayout has work to do.
func (f *FrameworkElement) NeedsLayout() bool {
	return f.dirty
}

// Measure computes DesiredSize for the given available size.
//
// The explicit Width/Height (scaled by zoom) wins over the content-driven
// size from MeasureOverride. The result is clamped to the available size
// minus margin, folded through the layout transform and reported with the
// margin added back. Invisible elements measure as zero.
func (f *FrameworkElement) Measure(available geometry.Size) {
	f.counters.Measure++
	f.availableSize = available
	f.measured = true
	f.resolveBindings()
	if !f.IsVisible() {
		f.desiredSize = geometry.Size{}
		f.contentSize = geometry.Size{}
		return
	}

	zoom := f.Zoom()
	margin := f.Margin.Get().Scale(zoom)
	inner := margin.Shrink(available)
	explicit := geometry.Size{Width: f.Width.Get() * zoom, Height: f.Height.Get() * zoom}

	constraint := inner
	if explicit.Width > 0 {
		constraint.Width = min(explicit.Width, inner.Width)
	}
	if explicit.Height > 0 {
		constraint.Height = min(explicit.Height, inner.Height)
	}

	size := f.self.MeasureOverride(constraint)
	if explicit.Width > 0 {
		size.Width = explicit.Width
	}
	if explicit.Height > 0 {
		size.Height = explicit.Height
	}
	size = size.Clamp(inner)
	f.contentSize = size

	if lt := f.LayoutTransform.Get(); !lt.IsIdentity() {
		size = lt.TransformSize(size)
	}
	f.desiredSize = margin.Inflate(size)
}

// Arrange places the element inside final: the margin is removed, the
// effective alignment positions the desired size in what remains, and the
// actual position and size are stored. The Loaded event fires on the first
// arrange after creation or Reset.
func (f *FrameworkElement) Arrange(final geometry.Rect) {
	f.counters.Arrange++
	f.finalRect = final

	margin := f.Margin.Get().Scale(f.Zoom())
	slot := final.Deflate(margin)
	inner := margin.Shrink(f.desiredSize)
	x, w := layout.AlignHorizontal(f.hAlign, slot.X, slot.Width, inner.Width)
	y, h := layout.AlignVertical(f.vAlign, slot.Y, slot.Height, inner.Height)
	rect := geometry.Rect{X: x, Y: y, Width: w, Height: h}

	f.ActualPosition.Set(rect.Position())
	f.ActualWidth.Set(w)
	f.ActualHeight.Set(h)
	f.arrangeValid = true
	f.dirty = false
	f.arrangePending = false

	if f.IsVisible() {
		content := rect
		if lt := f.LayoutTransform.Get(); !lt.IsIdentity() {
			// Children are laid out untransformed around the center; the
			// transform is applied when rendering.
			c := rect.Center()
			content = geometry.Rect{
				X:      c.X - f.contentSize.Width/2,
				Y:      c.Y - f.contentSize.Height/2,
				Width:  f.contentSize.Width,
				Height: f.contentSize.Height,
			}
		}
		f.self.ArrangeOverride(content)
	}

	if f.fireLoaded {
		f.fireLoaded = false
		f.FireEvent(EventLoaded)
		if cmd := f.Loaded.Get(); cmd != nil {
			cmd(f.self)
		}
	}
}

// Invalidate marks the element dirty and asks the window to schedule it.
// It does nothing until the element has been arranged once, and it never
// lays out synchronously.
func (f *FrameworkElement) Invalidate() {
	if !f.arrangeValid {
		return
	}
	f.dirty = true
	if f.window != nil {
		f.window.Invalidate(f.self)
	}
}

// InvalidateArrange is Invalidate plus a request that the next UpdateLayout
// arranges even if the desired size did not change. Containers use it after
// replacing children.
func (f *FrameworkElement) InvalidateArrange() {
	if !f.arrangeValid {
		return
	}
	f.arrangePending = true
	f.Invalidate()
}

// InvalidateRender schedules a new display list without touching layout.
func (f *FrameworkElement) InvalidateRender() {
	if f.window != nil && f.arrangeValid {
		f.window.Invalidate(f.self)
	}
}

// UpdateLayout is the single re-entry point after invalidation.
//
// A clean element returns immediately. A root measures and arranges
// against its declared size, or the window size. Otherwise the element is
// re-measured with its last available size:
//   - desired size changed: the parent is asked to arrange again and
//     updates its layout, so the parent arbitrates the new size;
//   - unchanged and an arrange was requested: the element re-arranges in
//     its last slot and stops there. The parent's UpdateLayout is not run,
//     since the element's slot cannot have changed;
//   - unchanged: no arrange; the parent's UpdateLayout runs instead.
func (f *FrameworkElement) UpdateLayout() {
	f.counters.UpdateLayout++
	if !f.dirty {
		return
	}
	f.dirty = false

	if f.parent == nil {
		f.layoutRoot()
		return
	}
	parent := f.parent.Framework()
	if !f.measured {
		// Never measured: only the parent knows our slot.
		parent.InvalidateArrange()
		parent.UpdateLayout()
		return
	}

	old := f.desiredSize
	f.Measure(f.availableSize)
	if !f.desiredSize.Equal(old) {
		parent.InvalidateArrange()
		parent.UpdateLayout()
		return
	}
	if f.arrangePending {
		f.Arrange(f.finalRect)
		return
	}
	parent.UpdateLayout()
}

func (f *FrameworkElement) layoutRoot() {
	zoom := f.Zoom()
	var m Metrics
	if f.window != nil {
		m = f.window.Metrics()
	}
	w := f.Width.Get() * zoom
	if w == 0 {
		w = m.DeviceWidth()
	}
	h := f.Height.Get() * zoom
	if h == 0 {
		h = m.DeviceHeight()
	}
	f.Measure(geometry.Size{Width: w, Height: h})
	f.Arrange(geometry.Rect{Width: w, Height: h})
}

// MeasureOverride implements Element. The default overlays all children
// and reports the largest desired size.
func (f *FrameworkElement) MeasureOverride(available geometry.Size) geometry.Size {
	var size geometry.Size
	f.self.VisitChildren(func(c Element) bool {
		cf := c.Framework()
		cf.Measure(available)
		size = size.Max(cf.DesiredSize())
		return true
	})
	return size
}

// ArrangeOverride implements Element. The default gives every child the
// whole inner rect.
func (f *FrameworkElement) ArrangeOverride(inner geometry.Rect) {
	f.self.VisitChildren(func(c Element) bool {
		c.Framework().Arrange(inner)
		return true
	})
}

// VisitChildren implements Element. A plain element has no children.
func (f *FrameworkElement) VisitChildren(func(child Element) bool) {}
