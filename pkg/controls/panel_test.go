package controls_test

import (
	"testing"

	"github.com/go-drift/skin/pkg/controls"
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/focus"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/layout"
	skintest "github.com/go-drift/skin/pkg/testing"
)

// fixed returns a top-left aligned element of an explicit size.
func fixed(name string, w, h float64) *core.FrameworkElement {
	f := core.NewFrameworkElement()
	f.Name.Set(name)
	f.Width.Set(w)
	f.Height.Set(h)
	f.HorizontalAlignment.Set(layout.HorizontalLeft)
	f.VerticalAlignment.Set(layout.VerticalTop)
	return f
}

func focusable(name string, w, h float64) *core.FrameworkElement {
	f := fixed(name, w, h)
	f.Focusable.Set(true)
	return f
}

func TestStackPanel_Layout(t *testing.T) {
	tests := []struct {
		name        string
		orientation controls.Orientation
		spacing     float64
		wantSize    geometry.Size
		wantSecond  geometry.Point
	}{
		{"vertical", controls.Vertical, 0, geometry.Size{Width: 100, Height: 80}, geometry.Point{X: 0, Y: 50}},
		{"vertical spacing", controls.Vertical, 10, geometry.Size{Width: 100, Height: 90}, geometry.Point{X: 0, Y: 60}},
		{"horizontal", controls.Horizontal, 0, geometry.Size{Width: 180, Height: 50}, geometry.Point{X: 100, Y: 0}},
		{"horizontal spacing", controls.Horizontal, 5, geometry.Size{Width: 185, Height: 50}, geometry.Point{X: 105, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := fixed("a", 100, 50), fixed("b", 80, 30)
			sp := controls.NewStackPanel(tt.orientation, a, b)
			sp.Spacing.Set(tt.spacing)

			sp.Measure(geometry.Size{Width: 800, Height: 600})
			if got := sp.DesiredSize(); !got.Equal(tt.wantSize) {
				t.Errorf("DesiredSize = %v, want %v", got, tt.wantSize)
			}
			sp.Arrange(geometry.Rect{Width: 800, Height: 600})
			if got := a.Bounds().Position(); got != (geometry.Point{}) {
				t.Errorf("first child at %v, want origin", got)
			}
			if got := b.Bounds().Position(); got != tt.wantSecond {
				t.Errorf("second child at %v, want %v", got, tt.wantSecond)
			}
		})
	}
}

func TestStackPanel_SkipsInvisibleChildren(t *testing.T) {
	a, hidden, c := fixed("a", 100, 50), fixed("hidden", 100, 50), fixed("c", 100, 50)
	hidden.Visible.Set(false)
	sp := controls.NewStackPanel(controls.Vertical, a, hidden, c)
	sp.Spacing.Set(10)

	sp.Measure(geometry.Size{Width: 800, Height: 600})
	if got := sp.DesiredSize().Height; got != 110 {
		t.Errorf("height = %v, want 110", got)
	}
	sp.Arrange(geometry.Rect{Width: 800, Height: 600})
	if got := c.Bounds().Y; got != 60 {
		t.Errorf("third child at y=%v, want 60", got)
	}
}

func TestWrapPanel_FlowsIntoLines(t *testing.T) {
	a, b, c := fixed("a", 100, 40), fixed("b", 100, 40), fixed("c", 100, 40)
	wp := controls.NewWrapPanel(controls.Horizontal, a, b, c)

	wp.Measure(geometry.Size{Width: 250, Height: 600})
	if got, want := wp.DesiredSize(), (geometry.Size{Width: 200, Height: 80}); !got.Equal(want) {
		t.Errorf("DesiredSize = %v, want %v", got, want)
	}
	wp.Arrange(geometry.Rect{Width: 250, Height: 600})

	want := []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 40}}
	for i, el := range []*core.FrameworkElement{a, b, c} {
		if got := el.Bounds().Position(); got != want[i] {
			t.Errorf("child %d at %v, want %v", i, got, want[i])
		}
	}
}

func TestWrapPanel_VerticalFlow(t *testing.T) {
	a, b, c := fixed("a", 40, 100), fixed("b", 40, 100), fixed("c", 40, 100)
	wp := controls.NewWrapPanel(controls.Vertical, a, b, c)

	wp.Measure(geometry.Size{Width: 600, Height: 250})
	if got, want := wp.DesiredSize(), (geometry.Size{Width: 80, Height: 200}); !got.Equal(want) {
		t.Errorf("DesiredSize = %v, want %v", got, want)
	}
	wp.Arrange(geometry.Rect{Width: 600, Height: 250})
	if got, want := c.Bounds().Position(), (geometry.Point{X: 40, Y: 0}); got != want {
		t.Errorf("third child at %v, want %v", got, want)
	}
}

func TestWrapPanel_UniformSlots(t *testing.T) {
	a, b, c := fixed("a", 100, 40), fixed("b", 60, 40), fixed("c", 30, 40)
	wp := controls.NewWrapPanel(controls.Horizontal, a, b, c)
	wp.ItemWidth.Set(125)
	wp.ItemHeight.Set(50)

	wp.Measure(geometry.Size{Width: 260, Height: 600})
	wp.Arrange(geometry.Rect{Width: 260, Height: 600})

	want := []geometry.Point{{X: 0, Y: 0}, {X: 125, Y: 0}, {X: 0, Y: 50}}
	for i, el := range []*core.FrameworkElement{a, b, c} {
		if got := el.Bounds().Position(); got != want[i] {
			t.Errorf("child %d at %v, want %v", i, got, want[i])
		}
	}
}

func TestPanel_ChildManagement(t *testing.T) {
	a, b := fixed("a", 10, 10), fixed("b", 10, 10)
	p := controls.NewPanel(a)
	p.Add(b, nil)

	if len(p.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(p.Children()))
	}
	if b.Parent() != core.Element(p) {
		t.Error("added child has wrong parent")
	}

	p.Remove(a)
	if len(p.Children()) != 1 || p.Children()[0] != core.Element(b) {
		t.Errorf("expected [b], got %v", p.Children())
	}
	if a.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	p.Remove(a) // unknown children are ignored

	c := fixed("c", 10, 10)
	p.SetChildren([]core.Element{c, b})
	if len(p.Children()) != 2 || p.Children()[0] != core.Element(c) {
		t.Errorf("expected [c b], got %v", p.Children())
	}
	if b.Parent() != core.Element(p) {
		t.Error("kept child lost its parent")
	}
}

func TestPanel_CopySkipsGeneratedChildren(t *testing.T) {
	p := controls.NewStackPanel(controls.Vertical, fixed("a", 10, 10))
	if cp := core.DeepCopy(p).(*controls.StackPanel); len(cp.Children()) != 1 {
		t.Errorf("expected copied child, got %d", len(cp.Children()))
	}

	p.IsItemsHost.Set(true)
	if cp := core.DeepCopy(p).(*controls.StackPanel); len(cp.Children()) != 0 {
		t.Errorf("items host copy must be empty, got %d children", len(cp.Children()))
	}
}

func TestPanel_PredictFocusPrefersClosest(t *testing.T) {
	tester := skintest.NewScreenTesterWithT(t)
	// Traversal order puts the far element first; distance must win.
	far := focusable("far", 50, 50)
	far.Margin.Set(geometry.Thickness{Left: 300})
	near := focusable("near", 50, 50)
	near.Margin.Set(geometry.Thickness{Left: 100})
	origin := focusable("origin", 50, 50)
	tester.PumpTree(controls.NewPanel(far, near, origin))

	if !origin.TrySetFocus() {
		t.Fatal("origin refused focus")
	}
	tester.Pump()
	if !tester.Move(focus.Right) {
		t.Fatal("Right should move focus")
	}
	if tester.Focused() != core.Element(near) {
		t.Errorf("expected near focused, got %v", tester.Focused())
	}
}

func TestOrientation_String(t *testing.T) {
	if controls.Vertical.String() != "Vertical" || controls.Horizontal.String() != "Horizontal" {
		t.Errorf("unexpected names %q, %q", controls.Vertical, controls.Horizontal)
	}
}
