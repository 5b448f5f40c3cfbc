// Package termview draws display lists into a terminal and drives a screen
// from a bubbletea program.
package termview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/skin/pkg/render"
)

// Cell is one character cell of a Grid.
type Cell struct {
	Rune    rune
	Focused bool
}

// Grid is a display list sampled down to terminal cells.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// Box-drawing runes used for stroked rectangles.
const (
	runeHorizontal  = '─'
	runeVertical    = '│'
	runeTopLeft     = '┌'
	runeTopRight    = '┐'
	runeBottomLeft  = '└'
	runeBottomRight = '┘'
	runeImage       = '▒'
)

var (
	focusStyle = lipgloss.NewStyle().Reverse(true)
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// Rasterize replays list onto a cols x rows grid. Device pixels are scaled
// uniformly per axis. Fills are ignored; strokes become box outlines, text
// is written from the top-left cell of its bounds and images are shaded.
// Text and images never cover a cell that already holds an outline.
// Cells covered by operations recorded for the focused element are marked.
func Rasterize(list *render.DisplayList, cols, rows int) *Grid {
	g := &Grid{Cols: max(cols, 0), Rows: max(rows, 0)}
	g.cells = make([]Cell, g.Cols*g.Rows)
	for i := range g.cells {
		g.cells[i].Rune = ' '
	}
	if list == nil || g.Cols == 0 || g.Rows == 0 {
		return g
	}
	size := list.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return g
	}
	sx, sy := float64(g.Cols)/size.Width, float64(g.Rows)/size.Height

	for _, op := range list.Ops() {
		if op.Opacity <= 0 {
			continue
		}
		r := op.DeviceBounds()
		x0 := int(math.Floor(r.X * sx))
		y0 := int(math.Floor(r.Y * sy))
		x1 := int(math.Ceil(r.Right()*sx)) - 1
		y1 := int(math.Ceil(r.Bottom()*sy)) - 1
		if x1 < x0 || y1 < y0 {
			continue
		}

		switch op.Kind {
		case render.OpRect:
			if op.Stroke != nil && op.StrokeWidth > 0 {
				g.box(x0, y0, x1, y1)
			}
		case render.OpText:
			g.text(x0, y0, x1, op.Text)
		case render.OpImage:
			g.fill(x0, y0, x1, y1, runeImage)
		}
		if op.Focused {
			g.markFocused(x0, y0, x1, y1)
		}
	}
	return g
}

// At returns the cell at col, row. Out-of-range positions return a blank.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{Rune: ' '}
	}
	return g.cells[row*g.Cols+col]
}

func (g *Grid) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.cells[row*g.Cols+col].Rune = r
}

// paint sets a content rune, keeping any outline already in the cell.
func (g *Grid) paint(col, row int, r rune) {
	if isOutline(g.At(col, row).Rune) {
		return
	}
	g.set(col, row, r)
}

func isOutline(r rune) bool {
	switch r {
	case runeHorizontal, runeVertical, runeTopLeft, runeTopRight, runeBottomLeft, runeBottomRight:
		return true
	}
	return false
}

func (g *Grid) box(x0, y0, x1, y1 int) {
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, runeHorizontal)
		g.set(x, y1, runeHorizontal)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, runeVertical)
		g.set(x1, y, runeVertical)
	}
	g.set(x0, y0, runeTopLeft)
	g.set(x1, y0, runeTopRight)
	g.set(x0, y1, runeBottomLeft)
	g.set(x1, y1, runeBottomRight)
}

func (g *Grid) text(x0, y, x1 int, s string) {
	x := x0
	for _, r := range s {
		if x > x1 {
			return
		}
		g.paint(x, y, r)
		x++
	}
}

func (g *Grid) fill(x0, y0, x1, y1 int, r rune) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.paint(x, y, r)
		}
	}
}

func (g *Grid) markFocused(x0, y0, x1, y1 int) {
	for y := max(y0, 0); y <= min(y1, g.Rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, g.Cols-1); x++ {
			g.cells[y*g.Cols+x].Focused = true
		}
	}
}

// String returns the grid as plain text, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.Rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range g.Cols {
			b.WriteRune(g.At(col, row).Rune)
		}
	}
	return b.String()
}

// Render returns the grid styled for a terminal: focused cells are drawn
// reversed and the whole grid is framed.
func (g *Grid) Render() string {
	lines := make([]string, g.Rows)
	var run strings.Builder
	for row := range g.Rows {
		var line strings.Builder
		focused := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if focused {
				line.WriteString(focusStyle.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for col := range g.Cols {
			c := g.At(col, row)
			if c.Focused != focused {
				flush()
				focused = c.Focused
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[row] = line.String()
	}
	return frameStyle.Render(strings.Join(lines, "\n"))
}
