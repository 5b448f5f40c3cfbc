package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/screen"
)

const (
	// DefaultTestWidth is the default logical width for the test screen.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test screen.
	DefaultTestHeight = 600
	// DefaultZoom is the default zoom factor.
	DefaultZoom = 1.0
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: screen did not settle")

// ScreenTester drives a screen.Screen without a display. It runs the same
// frame loop as a host but stamps frames with a fake clock and keeps the
// last display list for inspection.
type ScreenTester struct {
	screen *screen.Screen
	clock  *FakeClock
	width  float64
	height float64
	zoom   float64
	assets render.AssetManager
	loose  bool
	last   *render.DisplayList
}

// NewScreenTester creates a tester with default test environment.
// Call Cleanup() when done, or use NewScreenTesterWithT() instead.
func NewScreenTester() *ScreenTester {
	return &ScreenTester{
		clock:  NewFakeClock(),
		width:  DefaultTestWidth,
		height: DefaultTestHeight,
		zoom:   DefaultZoom,
	}
}

// NewScreenTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewScreenTesterWithT(t *testing.T) *ScreenTester {
	tester := NewScreenTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup hides the screen, releasing the tree's resources.
func (t *ScreenTester) Cleanup() {
	if t.screen != nil {
		t.screen.Hide()
		t.screen.SetRoot(nil)
	}
}

// SetSize sets the logical screen size. Must be called before PumpTree.
func (t *ScreenTester) SetSize(width, height float64) {
	t.width, t.height = width, height
	if t.screen != nil {
		t.screen.Resize(width, height)
	}
}

// SetZoom sets the zoom factor. Must be called before PumpTree.
func (t *ScreenTester) SetZoom(zoom float64) {
	t.zoom = zoom
	if t.screen != nil {
		t.screen.SetZoom(zoom)
	}
}

// SetAssets installs the asset manager. Must be called before PumpTree.
func (t *ScreenTester) SetAssets(assets render.AssetManager) {
	t.assets = assets
}

// SetLooseFocus disables the strict navigation pass. Must be called
// before PumpTree.
func (t *ScreenTester) SetLooseFocus(loose bool) {
	t.loose = loose
}

// Clock returns the fake clock used to stamp frames.
func (t *ScreenTester) Clock() *FakeClock {
	return t.clock
}

// Screen returns the screen, or nil before PumpTree.
func (t *ScreenTester) Screen() *screen.Screen {
	return t.screen
}

// PumpTree mounts (or remounts) root on a fresh screen and runs one frame.
func (t *ScreenTester) PumpTree(root core.Element) error {
	t.Cleanup()
	t.screen = screen.New(screen.Options{
		Width:      t.width,
		Height:     t.height,
		Zoom:       t.zoom,
		Assets:     t.assets,
		LooseFocus: t.loose,
	})
	t.screen.SetRoot(root)
	t.screen.Show()
	return t.Pump()
}

// Pump runs a single frame and advances the clock by one frame interval.
func (t *ScreenTester) Pump() error {
	if t.screen == nil {
		return errors.New("Pump called before PumpTree")
	}
	t.last = t.screen.Frame(t.clock.Now())
	t.clock.Advance(FrameInterval)
	return nil
}

// PumpFrames runs n frames.
func (t *ScreenTester) PumpFrames(n int) error {
	for range n {
		if err := t.Pump(); err != nil {
			return err
		}
	}
	return nil
}

// PumpAndSettle runs frames until the screen is idle or the timeout is
// reached. Returns ErrSettleTimeout if the screen does not settle.
func (t *ScreenTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.screen.NeedsFrame() {
			return nil
		}
		elapsed += FrameInterval
	}
	return ErrSettleTimeout
}

// Root returns the mounted root element.
func (t *ScreenTester) Root() core.Element {
	if t.screen == nil {
		return nil
	}
	return t.screen.Root()
}

// DisplayList returns the list recorded by the last frame.
func (t *ScreenTester) DisplayList() *render.DisplayList {
	return t.last
}

// Focused returns the focused element, or nil.
func (t *ScreenTester) Focused() core.Element {
	if t.screen == nil {
		return nil
	}
	return t.screen.FocusedElement()
}

// Focus moves focus to the first match of finder and runs a frame. It
// reports whether the element accepted focus.
func (t *ScreenTester) Focus(finder Finder) bool {
	el := t.Find(finder).FirstOrNil()
	if el == nil || !el.Framework().TrySetFocus() {
		return false
	}
	t.Pump()
	return true
}

// Find evaluates a finder against the current element tree.
func (t *ScreenTester) Find(finder Finder) FinderResult {
	root := t.Root()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// SendKey delivers one key press and runs a frame. It returns whether the
// screen reacted to the key.
func (t *ScreenTester) SendKey(code input.Code) bool {
	handled := t.screen.HandleKey(input.NewKey(code))
	t.Pump()
	return handled
}

// SendKeys delivers each key followed by a frame.
func (t *ScreenTester) SendKeys(codes ...input.Code) {
	for _, c := range codes {
		t.SendKey(c)
	}
}

// SendChar delivers a printable key.
func (t *ScreenTester) SendChar(r rune) bool {
	handled := t.screen.HandleKey(input.NewChar(r))
	t.Pump()
	return handled
}

// Move moves focus one step in dir without delivering a key to the tree.
func (t *ScreenTester) Move(dir focus.Direction) bool {
	moved := t.screen.MoveFocus(dir)
	t.Pump()
	return moved
}
