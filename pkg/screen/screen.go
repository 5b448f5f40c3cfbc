package screen

import (
	"sync"
	"time"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/layout"
	"github.com/go-drift/skin/pkg/render"
)

const (
	// DefaultWidth is the logical width used when Options.Width is zero.
	DefaultWidth = 1920
	// DefaultHeight is the logical height used when Options.Height is zero.
	DefaultHeight = 1080
)

// Options configures a Screen.
type Options struct {
	// Width and Height are the logical skin size.
	Width  float64
	Height float64
	// Zoom scales logical units to device pixels. Zero means 1.
	Zoom float64
	// Assets is the asset collaborator. It may be nil; elements that need
	// device resources then render without them.
	Assets render.AssetManager
	// LooseFocus skips the strict pass of directional navigation and
	// always uses the non-strict predicates.
	LooseFocus bool
	// TimingSamples is the capacity of the frame timing buffer.
	TimingSamples int
}

// pumper is implemented by asset managers that complete loads on the UI
// thread, such as render.ContentManager.
type pumper interface {
	Pump() int
}

// collector is implemented by asset managers that expire unused assets.
type collector interface {
	Collect() int
}

// collectEvery is the number of frames between two asset collections.
const collectEvery = 60

// Screen is the window hosting one element tree.
type Screen struct {
	metrics core.Metrics
	assets  render.AssetManager
	strict  bool

	root    core.Element
	focused core.Element
	shown   bool

	pipeline layout.PipelineOwner
	timing   *FrameTimingBuffer
	frames   int
	last     *render.DisplayList

	postMu sync.Mutex
	posted []func()
}

var _ core.Window = (*Screen)(nil)

// New creates a screen. Missing sizes default to 1920x1080.
func New(opts Options) *Screen {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	return &Screen{
		metrics: core.Metrics{Width: opts.Width, Height: opts.Height, Zoom: opts.Zoom},
		assets:  opts.Assets,
		strict:  !opts.LooseFocus,
		timing:  NewFrameTimingBuffer(opts.TimingSamples),
	}
}

// Invalidate implements core.Window.
func (s *Screen) Invalidate(el core.Element) {
	if el == nil {
		return
	}
	s.pipeline.Schedule(el.Framework())
}

// Metrics implements core.Window.
func (s *Screen) Metrics() core.Metrics { return s.metrics }

// Assets implements core.Window.
func (s *Screen) Assets() render.AssetManager { return s.assets }

// FocusedElement implements core.Window.
func (s *Screen) FocusedElement() core.Element { return s.focused }

// Root returns the hosted tree, or nil.
func (s *Screen) Root() core.Element { return s.root }

// IsShown reports whether the screen renders its tree.
func (s *Screen) IsShown() bool { return s.shown }

// Frames returns the number of frames rendered so far.
func (s *Screen) Frames() int { return s.frames }

// Timing returns the frame duration buffer.
func (s *Screen) Timing() *FrameTimingBuffer { return s.timing }

// LastFrame returns the display list recorded by the last Frame, or nil.
func (s *Screen) LastFrame() *render.DisplayList { return s.last }

// SetFocusedElement implements core.Window. The previous element loses its
// focus flag before the new one gains it, so exactly one element is
// focused at any time.
func (s *Screen) SetFocusedElement(el core.Element) {
	if s.focused == el {
		return
	}
	old := s.focused
	s.focused = el
	if old != nil {
		old.Framework().SetFocusState(false)
	}
	if el != nil {
		el.Framework().SetFocusState(true)
	}
	s.pipeline.MarkNeedsRender()
}

// Post implements core.Window. fn runs at the start of the next Frame.
// Safe for concurrent use.
func (s *Screen) Post(fn func()) {
	if fn == nil {
		return
	}
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
}

func (s *Screen) drainPosted() []func() {
	s.postMu.Lock()
	defer s.postMu.Unlock()
	fns := s.posted
	s.posted = nil
	return fns
}

// SetRoot replaces the hosted tree. The previous tree is hidden and
// detached; focus is cleared.
func (s *Screen) SetRoot(root core.Element) {
	if s.root == root {
		return
	}
	s.SetFocusedElement(nil)
	if old := s.root; old != nil {
		old.Deallocate()
		old.Reset()
		old.Framework().SetWindow(nil)
	}
	s.pipeline.Clear()
	s.root = root
	if root == nil {
		return
	}
	f := root.Framework()
	f.SetWindow(s)
	if s.shown {
		f.Initialize()
	}
}

// Show starts rendering the tree. Triggers are wired on the first show.
func (s *Screen) Show() {
	if s.shown {
		return
	}
	s.shown = true
	if s.root != nil {
		f := s.root.Framework()
		f.Initialize()
		f.InvalidateArrange()
	}
	s.pipeline.MarkNeedsRender()
}

// Hide stops rendering and releases all device resources of the tree.
// Loaded fires again on the next Show.
func (s *Screen) Hide() {
	if !s.shown {
		return
	}
	s.shown = false
	s.SetFocusedElement(nil)
	if s.root != nil {
		s.root.Deallocate()
		s.root.Reset()
	}
}

// Resize changes the logical size. The root lays out again on the next
// frame.
func (s *Screen) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.metrics.Width, s.metrics.Height = width, height
	s.relayout()
}

// SetZoom changes the zoom factor.
func (s *Screen) SetZoom(zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	s.metrics.Zoom = zoom
	s.relayout()
}

func (s *Screen) relayout() {
	if s.root != nil {
		s.root.Framework().InvalidateArrange()
	}
	s.pipeline.MarkNeedsRender()
}

// NeedsFrame reports whether anything changed since the last frame.
func (s *Screen) NeedsFrame() bool {
	s.postMu.Lock()
	posted := len(s.posted) > 0
	s.postMu.Unlock()
	return posted || s.pipeline.NeedsRender() || s.pipeline.NeedsLayout()
}

// Frame runs one frame: marshaled work, completed asset loads, the layout
// pipeline (parents first), the root's layout and finally the display
// list. A panic inside the frame is reported and the partial list is
// returned; the next frame starts from a clean slate.
func (s *Screen) Frame(now time.Time) (list *render.DisplayList) {
	start := time.Now()
	list = render.NewDisplayList(geometry.Size{
		Width:  s.metrics.DeviceWidth(),
		Height: s.metrics.DeviceHeight(),
	})
	defer errors.RecoverWithCallback("screen.Frame", func(any) {
		s.pipeline.Clear()
	})

	for _, fn := range s.drainPosted() {
		fn()
	}
	if p, ok := s.assets.(pumper); ok && p.Pump() > 0 {
		s.pipeline.MarkNeedsRender()
	}
	if s.root == nil || !s.shown {
		return list
	}

	s.pipeline.Flush()
	f := s.root.Framework()
	f.UpdateLayout()
	f.BuildRenderTree(render.NewContext(now), list)
	s.pipeline.ConsumeRender()

	s.last = list
	s.frames++
	if c, ok := s.assets.(collector); ok && s.frames%collectEvery == 0 {
		c.Collect()
	}
	s.timing.Add(time.Since(start))
	return list
}

// HandleKey delivers key to the tree and reports whether anything reacted.
//
// Without a focused element the first focusable element takes focus and
// the key is consumed. Otherwise the key goes to the focused element and
// bubbles up its ancestors until one marks it handled. An unhandled
// direction key moves focus.
func (s *Screen) HandleKey(key *input.Key) (handled bool) {
	defer errors.RecoverWithCallback("screen.HandleKey", func(any) {
		handled = false
	})
	if key == nil || s.root == nil || !s.shown {
		return false
	}
	if s.focused == nil {
		if el := core.FirstFocusable(s.root); el != nil {
			return el.Framework().TrySetFocus()
		}
		return false
	}
	for el := s.focused; el != nil && !key.Handled; el = el.Framework().Parent() {
		el.OnKeyPressed(key)
	}
	if key.Handled {
		return true
	}
	dir, ok := key.Direction()
	if !ok {
		return false
	}
	return s.MoveFocus(dir)
}

// MoveFocus moves focus one step in dir. It returns false when no element
// lies in that direction.
func (s *Screen) MoveFocus(dir focus.Direction) bool {
	if s.root == nil || s.focused == nil {
		return false
	}
	var target core.Element
	if s.strict {
		target = core.Navigate(s.root, s.focused, dir)
	} else {
		target = s.root.PredictFocus(s.focused.Bounds(), dir, false)
	}
	if target == nil || target == s.focused {
		return false
	}
	return target.Framework().TrySetFocus()
}

// FindElement returns the element named name, searching the root's name
// scope first and then the whole tree.
func (s *Screen) FindElement(name string) core.Element {
	if s.root == nil || name == "" {
		return nil
	}
	return core.FindName(s.root, name)
}
