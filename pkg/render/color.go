package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a straight-alpha color packed as 0xAARRGGBB.
type Color uint32

// Named colors.
const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)

// RGBA packs the four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 0xFF) }

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, n.A)
}

// ParseColor reads "#RGB", "#RRGGBB" or "#AARRGGBB"; the leading '#' is
// optional.
func ParseColor(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	switch len(digits) {
	case 3:
		digits = "FF" + string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 6:
		digits = "FF" + digits
	case 8:
	default:
		return 0, fmt.Errorf("render: color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("render: color %q: %w", s, err)
	}
	return Color(v), nil
}

// Components unpacks the channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// NRGBA converts c for use with image/draw.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// MultiplyOpacity scales alpha by opacity, clamped to [0, 1].
func (c Color) MultiplyOpacity(opacity float64) Color {
	opacity = min(1, max(0, opacity))
	a := uint8(float64(c.Alpha())*opacity + 0.5)
	return c&0x00FFFFFF | Color(a)<<24
}

// Hex formats c as "#AARRGGBB".
func (c Color) Hex() string { return fmt.Sprintf("#%08X", uint32(c)) }

// Lerp blends a toward b per channel, t clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = min(1, max(0, t))
	var out Color
	for shift := 0; shift < 32; shift += 8 {
		x, y := float64(uint8(a>>shift)), float64(uint8(b>>shift))
		out |= Color(uint8(x+(y-x)*t+0.5)) << shift
	}
	return out
}
