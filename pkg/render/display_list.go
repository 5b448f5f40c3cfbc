package render

import (
	"github.com/go-drift/skin/pkg/geometry"
)

// OpKind identifies a recorded operation.
type OpKind int

const (
	// OpRect fills and/or strokes a rectangle.
	OpRect OpKind = iota
	// OpText draws a run of text.
	OpText
	// OpImage draws an allocated asset.
	OpImage
	// OpBeginMask redirects following operations into a mask context.
	OpBeginMask
	// OpEndMask composites the mask context through its brush.
	OpEndMask
)

func (k OpKind) String() string {
	switch k {
	case OpRect:
		return "rect"
	case OpText:
		return "text"
	case OpImage:
		return "image"
	case OpBeginMask:
		return "begin-mask"
	case OpEndMask:
		return "end-mask"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing operation. Bounds are in element-local space;
// Transform maps them to device pixels.
type Op struct {
	Kind        OpKind
	Bounds      geometry.Rect
	Transform   geometry.Matrix
	Opacity     float64
	Z           float64
	Fill        Brush
	Stroke      Brush
	StrokeWidth float64
	Text        string
	Color       Color
	Asset       Asset
	Mask        *MaskContext
	Source      string
	Focused     bool
}

// DeviceBounds returns Bounds mapped through Transform.
func (o Op) DeviceBounds() geometry.Rect {
	return o.Transform.TransformRect(o.Bounds)
}

// DisplayList is an ordered list of drawing operations for one frame.
// A backend replays it front to back.
type DisplayList struct {
	ops  []Op
	size geometry.Size
}

// NewDisplayList creates an empty list for a surface of the given size.
func NewDisplayList(size geometry.Size) *DisplayList {
	return &DisplayList{size: size}
}

// Size returns the surface size the list was recorded for.
func (d *DisplayList) Size() geometry.Size {
	return d.size
}

// Ops returns the recorded operations. The slice must not be modified.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Len returns the number of operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

func (d *DisplayList) append(ctx Context, op Op) {
	op.Transform = ctx.Transform
	op.Opacity = ctx.Opacity
	op.Z = ctx.Z
	op.Source = ctx.Source
	op.Focused = ctx.Focused
	d.ops = append(d.ops, op)
}

// DrawRect records a rectangle. Either brush may be nil.
func (d *DisplayList) DrawRect(ctx Context, rect geometry.Rect, fill, stroke Brush, strokeWidth float64) {
	if fill == nil && (stroke == nil || strokeWidth <= 0) {
		return
	}
	d.append(ctx, Op{Kind: OpRect, Bounds: rect, Fill: fill, Stroke: stroke, StrokeWidth: strokeWidth})
}

// DrawText records a text run laid out inside rect.
func (d *DisplayList) DrawText(ctx Context, rect geometry.Rect, text string, color Color) {
	if text == "" {
		return
	}
	d.append(ctx, Op{Kind: OpText, Bounds: rect, Text: text, Color: color})
}

// DrawImage records an allocated asset stretched into rect. Unallocated
// assets are skipped.
func (d *DisplayList) DrawImage(ctx Context, rect geometry.Rect, asset Asset) {
	if asset == nil || !asset.IsAllocated() {
		return
	}
	d.append(ctx, Op{Kind: OpImage, Bounds: rect, Asset: asset})
}

// BeginMask starts redirecting operations into mask.
func (d *DisplayList) BeginMask(ctx Context, rect geometry.Rect, mask *MaskContext) {
	d.append(ctx, Op{Kind: OpBeginMask, Bounds: rect, Mask: mask, Fill: mask.Brush})
}

// EndMask closes the innermost BeginMask.
func (d *DisplayList) EndMask(ctx Context, rect geometry.Rect, mask *MaskContext) {
	d.append(ctx, Op{Kind: OpEndMask, Bounds: rect, Mask: mask, Fill: mask.Brush})
}
