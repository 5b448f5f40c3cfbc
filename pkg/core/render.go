package core

import (
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/render"
)

// BuildRenderTree brings the element's layout up to date and records it
// into list. Invisible elements record nothing. Opacity and transforms are
// folded into a copy of ctx; the caller's context is never modified.
func (f *FrameworkElement) BuildRenderTree(ctx render.Context, list *render.DisplayList) {
	if !f.IsVisible() {
		return
	}
	f.resolveBindings()
	f.UpdateLayout()
	if !f.self.IsAllocated() {
		f.self.Allocate()
	}

	ctx = ctx.Deeper().WithOpacity(f.Opacity.Get())
	if name := f.Name.Get(); name != "" {
		ctx = ctx.WithSource(name)
	}
	if f.HasFocus() {
		ctx.Focused = true
	}

	bounds := f.Bounds()
	if rt := f.RenderTransform.Get(); !rt.IsIdentity() {
		o := f.RenderTransformOrigin.Get()
		origin := geometry.Point{X: bounds.X + bounds.Width*o.X, Y: bounds.Y + bounds.Height*o.Y}
		ctx = ctx.WithTransform(rt.About(origin))
	}
	if lt := f.LayoutTransform.Get(); !lt.IsIdentity() {
		ctx = ctx.WithTransform(lt.About(bounds.Center()))
	}

	if brush := f.OpacityMask.Get(); brush != nil {
		if mask := f.ensureMask(brush, bounds.Size()); mask != nil {
			list.BeginMask(ctx, bounds, mask)
			f.self.RenderOverride(ctx, list)
			list.EndMask(ctx, bounds, mask)
			return
		}
	}
	f.self.RenderOverride(ctx, list)
}

// ensureMask returns a mask target matching the current size, recreating
// it on resize. A brush change frees the old target from its listener.
// Without an asset manager the element renders unmasked.
func (f *FrameworkElement) ensureMask(brush render.Brush, size geometry.Size) *render.MaskContext {
	if m := f.mask; m.IsAllocated() && m.Size.Equal(size) {
		return m
	}
	f.releaseMask()
	if f.window == nil || f.window.Assets() == nil || size.IsZero() {
		return nil
	}
	f.mask = f.window.Assets().CreateMask(size, brush)
	return f.mask
}

func (f *FrameworkElement) releaseMask() {
	f.mask.Free()
	f.mask = nil
}

// RenderOverride implements Element. The default renders the children.
func (f *FrameworkElement) RenderOverride(ctx render.Context, list *render.DisplayList) {
	f.RenderChildren(ctx, list)
}

// RenderChildren builds the render tree of every child in visit order.
func (f *FrameworkElement) RenderChildren(ctx render.Context, list *render.DisplayList) {
	f.self.VisitChildren(func(c Element) bool {
		c.Framework().BuildRenderTree(ctx, list)
		return true
	})
}

// Allocate implements Element. The base marks the element allocated and
// allocates the visible children.
func (f *FrameworkElement) Allocate() {
	f.allocated = true
	f.self.VisitChildren(func(c Element) bool {
		if c.IsVisible() {
			c.Allocate()
		}
		return true
	})
}

// Deallocate implements Element. It frees the opacity-mask target and
// deallocates the children. Repeated calls are harmless.
func (f *FrameworkElement) Deallocate() {
	f.releaseMask()
	f.allocated = false
	f.self.VisitChildren(func(c Element) bool {
		c.Deallocate()
		return true
	})
}

// IsAllocated implements Element.
func (f *FrameworkElement) IsAllocated() bool {
	return f.allocated
}

// Reset implements Element: the Loaded event fires again on the next
// arrange, for this element and its subtree.
func (f *FrameworkElement) Reset() {
	f.fireLoaded = true
	f.self.VisitChildren(func(c Element) bool {
		c.Reset()
		return true
	})
}
