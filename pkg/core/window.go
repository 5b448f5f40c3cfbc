package core

import "github.com/go-drift/skin/pkg/render"

// Metrics is the per-frame context used to convert logical units to device
// pixels.
type Metrics struct {
	// Width and Height are the logical skin size.
	Width  float64
	Height float64
	// Zoom scales logical units to device pixels.
	Zoom float64
}

// DeviceWidth returns Width scaled by Zoom.
func (m Metrics) DeviceWidth() float64 { return m.Width * m.zoom() }

// DeviceHeight returns Height scaled by Zoom.
func (m Metrics) DeviceHeight() float64 { return m.Height * m.zoom() }

func (m Metrics) zoom() float64 {
	if m.Zoom <= 0 {
		return 1
	}
	return m.Zoom
}

// Window is the host collaborator owning an element tree.
type Window interface {
	// Invalidate schedules a future layout and render pass for el.
	Invalidate(el Element)
	// Metrics returns the current logical size and zoom.
	Metrics() Metrics
	// Assets returns the asset collaborator.
	Assets() render.AssetManager
	// FocusedElement returns the element holding focus, or nil.
	FocusedElement() Element
	// SetFocusedElement moves focus to el; nil clears focus.
	SetFocusedElement(el Element)
	// Post runs fn on the UI thread before the next frame. Safe to call
	// from any goroutine.
	Post(fn func())
}
