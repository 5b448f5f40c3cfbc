package core

import (
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
)

// TrySetFocus moves the window focus to this element. It fails when the
// element is detached or not focusable, enabled and visible.
func (f *FrameworkElement) TrySetFocus() bool {
	if f.window == nil || !focus.CanFocus(f.self) {
		return false
	}
	if !f.HasFocus() {
		f.window.SetFocusedElement(f.self)
	}
	return true
}

// SetFocusState writes the read-only focus flag. Only windows call it.
func (f *FrameworkElement) SetFocusState(focused bool) {
	f.Focused.Set(focused)
}

// PredictFocus implements Element.
//
// Children are searched first, in visit order; the first match wins. The
// element itself is tested last.
func (f *FrameworkElement) PredictFocus(focused geometry.Rect, dir focus.Direction, strict bool) Element {
	if !f.IsVisible() {
		return nil
	}
	if match := f.PredictFocusInChildren(focused, dir, strict); match != nil {
		return match
	}
	if focus.Predict(dir, f.self, focused, strict) {
		return f.self
	}
	return nil
}

// PredictFocusInChildren returns the first child match in visit order.
func (f *FrameworkElement) PredictFocusInChildren(focused geometry.Rect, dir focus.Direction, strict bool) Element {
	var match Element
	f.self.VisitChildren(func(c Element) bool {
		match = c.PredictFocus(focused, dir, strict)
		return match == nil
	})
	return match
}

// OnKeyPressed implements Element. The base ignores keys.
func (f *FrameworkElement) OnKeyPressed(*input.Key) {}

// Navigate finds the element to focus when moving dir from focused inside
// root. Strict prediction is tried first; if nothing overlaps, the
// non-strict variant decides.
func Navigate(root, focused Element, dir focus.Direction) Element {
	if root == nil || focused == nil {
		return nil
	}
	from := focused.Bounds()
	if match := root.PredictFocus(from, dir, true); match != nil {
		return match
	}
	return root.PredictFocus(from, dir, false)
}

// FirstFocusable returns the first element in traversal order that can
// take focus.
func FirstFocusable(root Element) Element {
	return FindElement(root, func(el Element) bool {
		return focus.CanFocus(el) && visibleChain(el)
	})
}

// visibleChain reports whether el and all its ancestors are visible.
func visibleChain(el Element) bool {
	for e := el; e != nil; e = e.Framework().Parent() {
		if !e.IsVisible() {
			return false
		}
	}
	return true
}
