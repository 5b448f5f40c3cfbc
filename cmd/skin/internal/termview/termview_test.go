package termview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/skin/pkg/controls"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/screen"
)

var white = render.SolidColorBrush{Color: render.ColorWhite}

func TestRasterize(t *testing.T) {
	list := render.NewDisplayList(geometry.Size{Width: 100, Height: 50})
	ctx := render.NewContext(time.Time{})
	list.DrawRect(ctx, geometry.Rect{Width: 100, Height: 50}, white, nil, 0)
	list.DrawRect(ctx, geometry.Rect{X: 0, Y: 0, Width: 50, Height: 30}, nil, white, 1)
	list.DrawText(ctx, geometry.Rect{X: 10, Y: 10, Width: 30, Height: 10}, "hi there", render.ColorWhite)

	g := Rasterize(list, 10, 5)
	want := strings.Join([]string{
		"┌───┐     ",
		"│hi │     ",
		"└───┘     ",
		"          ",
		"          ",
	}, "\n")
	if got := g.String(); got != want {
		t.Errorf("unexpected grid:\n%s\nwant:\n%s", got, want)
	}
}

func TestRasterizeImageAndFocus(t *testing.T) {
	list := render.NewDisplayList(geometry.Size{Width: 40, Height: 40})
	ctx := render.NewContext(time.Time{})
	ctx.Focused = true
	list.DrawImage(ctx, geometry.Rect{X: 20, Y: 20, Width: 20, Height: 20}, readyAsset{})

	g := Rasterize(list, 4, 4)
	for row := range 4 {
		for col := range 4 {
			inside := row >= 2 && col >= 2
			c := g.At(col, row)
			if inside != (c.Rune == runeImage) || inside != c.Focused {
				t.Errorf("cell %d,%d = %+v, inside %v", col, row, c, inside)
			}
		}
	}
	if g.At(-1, 0).Rune != ' ' || g.At(4, 0).Rune != ' ' {
		t.Error("out of range cells should be blank")
	}
}

func TestRasterizeContentInsideOutline(t *testing.T) {
	list := render.NewDisplayList(geometry.Size{Width: 40, Height: 40})
	ctx := render.NewContext(time.Time{})
	list.DrawRect(ctx, geometry.Rect{Width: 40, Height: 40}, nil, white, 1)
	list.DrawImage(ctx, geometry.Rect{X: 1, Y: 1, Width: 38, Height: 38}, readyAsset{})
	list.DrawText(ctx, geometry.Rect{X: 1, Y: 1, Width: 38, Height: 10}, "caption", render.ColorWhite)

	g := Rasterize(list, 4, 4)
	want := strings.Join([]string{
		"┌──┐",
		"│▒▒│",
		"│▒▒│",
		"└──┘",
	}, "\n")
	if got := g.String(); got != want {
		t.Errorf("unexpected grid:\n%s\nwant:\n%s", got, want)
	}
}

func TestRasterizeEdgeCases(t *testing.T) {
	if g := Rasterize(nil, 3, 2); g.String() != "   \n   " {
		t.Errorf("nil list should give a blank grid, got %q", g.String())
	}
	if g := Rasterize(render.NewDisplayList(geometry.Size{}), 2, 1); g.String() != "  " {
		t.Errorf("empty surface should give a blank grid, got %q", g.String())
	}
	if g := Rasterize(nil, -1, 4); g.Cols != 0 || g.String() != "\n\n\n" {
		t.Errorf("negative columns should clamp to zero, got %+v", g)
	}
}

func TestRenderFramesGrid(t *testing.T) {
	g := Rasterize(nil, 3, 1)
	out := g.Render()
	if !strings.Contains(out, "╭") || !strings.Contains(out, "   ") {
		t.Errorf("expected a rounded frame around the grid, got %q", out)
	}
}

type readyAsset struct{}

func (readyAsset) ID() string          { return "poster" }
func (readyAsset) IsAllocated() bool   { return true }
func (readyAsset) Size() geometry.Size { return geometry.Size{Width: 1, Height: 1} }

func TestKeyFor(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		code input.Code
		r    rune
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, input.Up, 0, true},
		{tea.KeyMsg{Type: tea.KeyDown}, input.Down, 0, true},
		{tea.KeyMsg{Type: tea.KeyLeft}, input.Left, 0, true},
		{tea.KeyMsg{Type: tea.KeyRight}, input.Right, 0, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, input.Enter, 0, true},
		{tea.KeyMsg{Type: tea.KeyEsc}, input.Back, 0, true},
		{tea.KeyMsg{Type: tea.KeyBackspace}, input.Back, 0, true},
		{tea.KeyMsg{Type: tea.KeyPgDown}, input.PageDown, 0, true},
		{tea.KeyMsg{Type: tea.KeyHome}, input.Home, 0, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, input.None, 'x', true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xy")}, 0, 0, false},
		{tea.KeyMsg{Type: tea.KeyTab}, 0, 0, false},
	}
	for _, tt := range tests {
		key := KeyFor(tt.msg)
		if (key != nil) != tt.ok {
			t.Errorf("KeyFor(%v) = %v, want ok %v", tt.msg, key, tt.ok)
			continue
		}
		if key != nil && (key.Code != tt.code || key.Rune != tt.r) {
			t.Errorf("KeyFor(%v) = %v, want %v/%q", tt.msg, key, tt.code, tt.r)
		}
	}
}

func TestModel(t *testing.T) {
	first := controls.NewButton("first", nil)
	second := controls.NewButton("second", nil)
	s := screen.New(screen.Options{Width: 200, Height: 100})
	s.SetRoot(controls.NewStackPanel(controls.Vertical, first, second))
	s.Show()

	m := NewModel(s, "test")
	if m.View() != "loading..." {
		t.Errorf("expected placeholder before the first frame, got %q", m.View())
	}
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}

	m.Update(tea.WindowSizeMsg{Width: 42, Height: 13})
	if _, cmd := m.Update(tickMsg(time.Time{})); cmd == nil {
		t.Error("a tick should schedule the next tick")
	}
	if g := m.Grid(); g == nil || g.Cols != 40 || g.Rows != 10 {
		t.Fatalf("expected a 40x10 grid, got %+v", m.Grid())
	}
	for i := 0; i < 5 && s.NeedsFrame(); i++ {
		m.Step(time.Time{})
	}
	frames := s.Frames()
	m.Step(time.Time{})
	if s.Frames() != frames {
		t.Error("an idle screen should not render again")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.FocusedElement() != first {
		t.Fatalf("first key should focus the first button, got %v", s.FocusedElement())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.FocusedElement() != second {
		t.Errorf("Down should move focus to the second button, got %v", s.FocusedElement())
	}
	m.Step(time.Time{})
	if s.Frames() != frames+1 {
		t.Error("a focus change should render a frame")
	}
	count := fmt.Sprintf("frames %d", s.Frames())
	if !strings.Contains(m.Status(), count) || !strings.Contains(m.Status(), "test") {
		t.Errorf("unexpected status %q", m.Status())
	}
	if !strings.Contains(m.View(), count) {
		t.Error("view should include the status line")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q should quit")
	}
}
