package render

import (
	"slices"

	"github.com/go-drift/skin/pkg/geometry"
)

// Brush describes how an area is filled.
type Brush interface {
	// ColorAt samples the brush at t in [0, 1] along its main axis.
	ColorAt(t float64) Color
	// IsOpaque reports whether every sample is fully opaque.
	IsOpaque() bool
}

// SolidColorBrush fills with one color.
type SolidColorBrush struct {
	Color Color
}

// ColorAt returns the brush color.
func (b SolidColorBrush) ColorAt(float64) Color { return b.Color }

// IsOpaque reports whether the color has full alpha.
func (b SolidColorBrush) IsOpaque() bool { return uint8(b.Color>>24) == 0xFF }

// GradientStop is a color at a relative offset along a gradient.
type GradientStop struct {
	Offset float64
	Color  Color
}

// LinearGradientBrush interpolates between stops along Start→End, both in
// relative element coordinates.
type LinearGradientBrush struct {
	Start geometry.Point
	End   geometry.Point
	Stops []GradientStop
}

// ColorAt interpolates the stops at t.
func (b LinearGradientBrush) ColorAt(t float64) Color {
	if len(b.Stops) == 0 {
		return ColorTransparent
	}
	stops := slices.SortedFunc(slices.Values(b.Stops), func(x, y GradientStop) int {
		switch {
		case x.Offset < y.Offset:
			return -1
		case x.Offset > y.Offset:
			return 1
		}
		return 0
	})
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev := stops[i-1]
			span := stops[i].Offset - prev.Offset
			if span <= 0 {
				return stops[i].Color
			}
			return Lerp(prev.Color, stops[i].Color, (t-prev.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// IsOpaque reports whether every stop is opaque.
func (b LinearGradientBrush) IsOpaque() bool {
	for _, s := range b.Stops {
		if uint8(s.Color>>24) != 0xFF {
			return false
		}
	}
	return len(b.Stops) > 0
}
