package layout

import "math"

// HorizontalAlignment positions an element inside the horizontal extent of
// the slot its parent granted.
type HorizontalAlignment int

const (
	// HorizontalStretch fills the slot. It is the default.
	HorizontalStretch HorizontalAlignment = iota
	// HorizontalLeft aligns to the left edge of the slot.
	HorizontalLeft
	// HorizontalCenter centers in the slot.
	HorizontalCenter
	// HorizontalRight aligns to the right edge of the slot.
	HorizontalRight
)

func (a HorizontalAlignment) String() string {
	switch a {
	case HorizontalLeft:
		return "Left"
	case HorizontalCenter:
		return "Center"
	case HorizontalRight:
		return "Right"
	default:
		return "Stretch"
	}
}

// VerticalAlignment positions an element inside the vertical extent of the
// slot its parent granted.
type VerticalAlignment int

const (
	// VerticalStretch fills the slot. It is the default.
	VerticalStretch VerticalAlignment = iota
	// VerticalTop aligns to the top edge of the slot.
	VerticalTop
	// VerticalCenter centers in the slot.
	VerticalCenter
	// VerticalBottom aligns to the bottom edge of the slot.
	VerticalBottom
)

func (a VerticalAlignment) String() string {
	switch a {
	case VerticalTop:
		return "Top"
	case VerticalCenter:
		return "Center"
	case VerticalBottom:
		return "Bottom"
	default:
		return "Stretch"
	}
}

// ParseHorizontalAlignment maps a skin attribute value to an alignment.
// Unknown values map to Stretch.
func ParseHorizontalAlignment(s string) HorizontalAlignment {
	switch s {
	case "Left":
		return HorizontalLeft
	case "Center":
		return HorizontalCenter
	case "Right":
		return HorizontalRight
	default:
		return HorizontalStretch
	}
}

// ParseVerticalAlignment maps a skin attribute value to an alignment.
// Unknown values map to Stretch.
func ParseVerticalAlignment(s string) VerticalAlignment {
	switch s {
	case "Top":
		return VerticalTop
	case "Center":
		return VerticalCenter
	case "Bottom":
		return VerticalBottom
	default:
		return VerticalStretch
	}
}

// AlignHorizontal returns the left edge and width of an element of the given
// desired width inside the slot [slotX, slotX+slotWidth].
// The leftover space is split with plain float division for Center.
func AlignHorizontal(a HorizontalAlignment, slotX, slotWidth, desired float64) (x, width float64) {
	if a == HorizontalStretch {
		return slotX, slotWidth
	}
	width = math.Min(desired, slotWidth)
	switch a {
	case HorizontalCenter:
		return slotX + (slotWidth-width)/2, width
	case HorizontalRight:
		return slotX + slotWidth - width, width
	default:
		return slotX, width
	}
}

// AlignVertical is the vertical counterpart of AlignHorizontal.
func AlignVertical(a VerticalAlignment, slotY, slotHeight, desired float64) (y, height float64) {
	if a == VerticalStretch {
		return slotY, slotHeight
	}
	height = math.Min(desired, slotHeight)
	switch a {
	case VerticalCenter:
		return slotY + (slotHeight-height)/2, height
	case VerticalBottom:
		return slotY + slotHeight - height, height
	default:
		return slotY, height
	}
}
