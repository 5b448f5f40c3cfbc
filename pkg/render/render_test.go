package render

import (
	"context"
	stderrors "errors"
	"image/color"
	"testing"
	"time"

	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/geometry"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#FF0000", ColorRed, true},
		{"#80FFFFFF", RGBA(255, 255, 255, 0x80), true},
		{"00FF00", ColorGreen, true},
		{"#F00", ColorRed, true},
		{"#XYZ", 0, false},
		{"#GG0000", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, ok=%v", tt.in, got.Hex(), err, tt.want.Hex(), tt.ok)
		}
	}
}

func TestColorImageInterop(t *testing.T) {
	c := RGBA(10, 20, 30, 40)
	if got := FromColor(c.NRGBA()); got != c {
		t.Errorf("FromColor(NRGBA) = %s, want %s", got.Hex(), c.Hex())
	}
	if got := FromColor(color.Gray{Y: 128}); got != RGB(128, 128, 128) {
		t.Errorf("FromColor(Gray) = %s", got.Hex())
	}
}

func TestColorOpacity(t *testing.T) {
	c := ColorWhite.MultiplyOpacity(0.5)
	if _, _, _, a := c.Components(); a != 128 {
		t.Errorf("alpha = %d, want 128", a)
	}
	if got := Lerp(ColorBlack, ColorWhite, 0.5); got != RGB(128, 128, 128) {
		t.Errorf("Lerp = %s", got.Hex())
	}
}

func TestGradientBrush(t *testing.T) {
	b := LinearGradientBrush{Stops: []GradientStop{
		{Offset: 1, Color: ColorWhite},
		{Offset: 0, Color: ColorBlack},
	}}
	if b.ColorAt(-1) != ColorBlack || b.ColorAt(2) != ColorWhite {
		t.Error("samples outside the stops should clamp")
	}
	if b.ColorAt(0.5) != RGB(128, 128, 128) {
		t.Errorf("midpoint = %s", b.ColorAt(0.5).Hex())
	}
	if !b.IsOpaque() {
		t.Error("opaque stops should make the brush opaque")
	}
	if (SolidColorBrush{Color: ColorTransparent}).IsOpaque() {
		t.Error("transparent solid brush is not opaque")
	}
}

func TestContextIsAValue(t *testing.T) {
	root := NewContext(time.Time{})
	child := root.WithOpacity(0.5).WithTransform(geometry.Translation(10, 0))
	grandchild := child.WithOpacity(0.5).WithTransform(geometry.Translation(0, 5))

	if root.Opacity != 1 || !root.Transform.IsIdentity() {
		t.Error("deriving a context must not mutate the parent")
	}
	if grandchild.Opacity != 0.25 {
		t.Errorf("Opacity = %v, want 0.25", grandchild.Opacity)
	}
	if p := grandchild.Transform.TransformPoint(geometry.Point{}); p != (geometry.Point{X: 10, Y: 5}) {
		t.Errorf("origin maps to %+v, want {10 5}", p)
	}
}

func TestDisplayListSkipsEmptyOps(t *testing.T) {
	d := NewDisplayList(geometry.Size{Width: 100, Height: 100})
	ctx := NewContext(time.Time{}).WithSource("Poster")
	d.DrawRect(ctx, geometry.Rect{Width: 10, Height: 10}, nil, nil, 0)
	d.DrawText(ctx, geometry.Rect{}, "", ColorWhite)
	d.DrawImage(ctx, geometry.Rect{}, nil)
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", d.Len())
	}
	d.DrawRect(ctx, geometry.Rect{Width: 10, Height: 10}, SolidColorBrush{Color: ColorRed}, nil, 0)
	if d.Len() != 1 || d.Ops()[0].Source != "Poster" || d.Ops()[0].Kind != OpRect {
		t.Errorf("ops = %+v", d.Ops())
	}
}

func TestMaskFreeIsIdempotent(t *testing.T) {
	released := 0
	m := NewMaskContext(geometry.Size{Width: 1, Height: 1}, nil, func(*MaskContext) { released++ })
	m.Free()
	m.Free()
	if released != 1 || m.IsAllocated() {
		t.Errorf("released = %d, allocated = %v", released, m.IsAllocated())
	}
	var nilMask *MaskContext
	nilMask.Free()
	if nilMask.IsAllocated() {
		t.Error("nil mask is never allocated")
	}
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func inline(fn func()) { fn() }

func TestContentManagerPublishesOnPump(t *testing.T) {
	loads := 0
	m := NewContentManager(func(ctx context.Context, id string, thumb bool) (geometry.Size, error) {
		loads++
		return geometry.Size{Width: 320, Height: 180}, nil
	}, ContentManagerOptions{Go: inline})

	a := m.Load("poster.jpg", true)
	b := m.Load("poster.jpg", true)
	if a != b {
		t.Error("same source should share a handle")
	}
	if a.IsAllocated() {
		t.Error("asset must not be allocated before Pump")
	}
	if n := m.Pump(); n != 1 {
		t.Errorf("Pump() = %d, want 1", n)
	}
	if !a.IsAllocated() || a.Size().Width != 320 {
		t.Errorf("asset not published: allocated=%v size=%v", a.IsAllocated(), a.Size())
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestContentManagerRetriesFailedLoads(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	fail := true
	m := NewContentManager(func(context.Context, string, bool) (geometry.Size, error) {
		if fail {
			return geometry.Size{}, stderrors.New("decode failed")
		}
		return geometry.Size{Width: 1, Height: 1}, nil
	}, ContentManagerOptions{Go: inline, Now: clock.Now, RetryDelay: time.Second})

	rec := &errors.Recorder{}
	defer errors.SetHandler(errors.SetHandler(rec))

	a := m.Load("broken.png", false)
	m.Pump()
	if a.IsAllocated() || len(rec.Errors()) != 1 {
		t.Fatalf("allocated=%v reported=%d", a.IsAllocated(), len(rec.Errors()))
	}

	fail = false
	m.Pump() // retry delay not elapsed
	m.Pump()
	if a.IsAllocated() {
		t.Fatal("retry must wait for the delay")
	}
	clock.now = clock.now.Add(2 * time.Second)
	m.Pump() // restarts the load
	m.Pump() // publishes it
	if !a.IsAllocated() {
		t.Error("expected retried load to allocate")
	}
}

func TestContentManagerCollect(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	m := NewContentManager(func(context.Context, string, bool) (geometry.Size, error) {
		return geometry.Size{Width: 1, Height: 1}, nil
	}, ContentManagerOptions{Go: inline, Now: clock.Now, MaxAge: time.Minute})

	a := m.Load("a", false)
	m.Pump()
	m.Remove(a)
	m.Remove(a) // extra removes are ignored

	if n := m.Collect(); n != 0 {
		t.Errorf("Collect() before MaxAge = %d, want 0", n)
	}
	clock.now = clock.now.Add(2 * time.Minute)
	if n := m.Collect(); n != 1 {
		t.Errorf("Collect() = %d, want 1", n)
	}
	if a.IsAllocated() {
		t.Error("collected asset must not report allocated")
	}
	if b := m.Load("a", false); b == a {
		t.Error("loading after collect should create a fresh handle")
	}

	mask := m.CreateMask(geometry.Size{Width: 4, Height: 4}, nil)
	if _, _, masks := m.Stats(); masks != 1 {
		t.Errorf("masks = %d, want 1", masks)
	}
	mask.Free()
	if _, _, masks := m.Stats(); masks != 0 {
		t.Errorf("masks after Free = %d, want 0", masks)
	}
}
