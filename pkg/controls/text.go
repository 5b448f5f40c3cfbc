package controls

import (
	"math"
	"strings"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFace measures text when a TextBlock has no face of its own. Its
// nominal size is basicfont's 13 pixel line.
var DefaultFace font.Face = basicfont.Face7x13

const defaultFontSize = 13

// TextBlock displays a string. Its content-driven size comes from font
// metrics scaled by FontSize and the window zoom.
type TextBlock struct {
	core.FrameworkElement

	Text       *property.Cell[string]
	Foreground *property.Cell[render.Color]
	FontSize   *property.Cell[float64]
	// Wrap breaks lines at word boundaries to fit the available width.
	Wrap *property.Cell[bool]
	Face *property.Cell[font.Face]

	lines []string
	lineH float64
}

// NewTextBlock returns a text block showing text.
func NewTextBlock(text string) *TextBlock {
	t := &TextBlock{}
	t.Init(t)
	t.Text.Set(text)
	return t
}

// Init initializes the text block for self.
func (t *TextBlock) Init(self core.Element) {
	t.FrameworkElement.Init(self)
	t.Text = property.New("")
	t.Foreground = property.New(render.ColorWhite)
	t.FontSize = property.New(float64(defaultFontSize))
	t.Wrap = property.New(false)
	t.Face = property.New[font.Face](nil)

	b := t.Bag()
	b.Register("Text", t.Text)
	b.Register("Foreground", t.Foreground)
	b.Register("FontSize", t.FontSize)
	b.Register("Wrap", t.Wrap)
	b.Register("Face", t.Face)

	t.Text.AttachFunc(t.Invalidate)
	t.FontSize.AttachFunc(t.Invalidate)
	t.Wrap.AttachFunc(t.Invalidate)
	t.Face.AttachFunc(t.Invalidate)
	t.Foreground.AttachFunc(t.InvalidateRender)
}

// NewInstance implements core.Element.
func (t *TextBlock) NewInstance() core.Element { return NewTextBlock("") }

func (t *TextBlock) face() font.Face {
	if f := t.Face.Get(); f != nil {
		return f
	}
	return DefaultFace
}

// scale converts face pixels to device pixels.
func (t *TextBlock) scale() float64 {
	return t.FontSize.Get() / defaultFontSize * t.Zoom()
}

func (t *TextBlock) advance(s string) float64 {
	return float64(font.MeasureString(t.face(), s).Ceil()) * t.scale()
}

// MeasureOverride implements core.Element.
func (t *TextBlock) MeasureOverride(available geometry.Size) geometry.Size {
	t.lineH = float64(t.face().Metrics().Height.Ceil()) * t.scale()
	t.lines = t.lines[:0]
	text := t.Text.Get()
	if text == "" {
		return geometry.Size{}
	}
	wrap := t.Wrap.Get() && !math.IsInf(available.Width, 1)
	var width float64
	for _, para := range strings.Split(text, "\n") {
		if !wrap {
			t.lines = append(t.lines, para)
			width = max(width, t.advance(para))
			continue
		}
		for _, line := range t.wrapLine(para, available.Width) {
			t.lines = append(t.lines, line)
			width = max(width, t.advance(line))
		}
	}
	return geometry.Size{Width: width, Height: float64(len(t.lines)) * t.lineH}
}

// wrapLine breaks para greedily at spaces. A single word wider than limit
// gets a line of its own.
func (t *TextBlock) wrapLine(para string, limit float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if next := cur + " " + w; t.advance(next) <= limit {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// Lines returns the lines produced by the last measure.
func (t *TextBlock) Lines() []string {
	return t.lines
}

// RenderOverride implements core.Element.
func (t *TextBlock) RenderOverride(ctx render.Context, list *render.DisplayList) {
	b := t.Bounds()
	for i, line := range t.lines {
		r := geometry.Rect{X: b.X, Y: b.Y + float64(i)*t.lineH, Width: b.Width, Height: t.lineH}
		list.DrawText(ctx, r, line, t.Foreground.Get())
	}
}
