package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/render"
)

// DisplayOp represents a serialized drawing operation.
type DisplayOp struct {
	Op     string         `yaml:"op"`
	Source string         `yaml:"source,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

// serializeDisplayList converts recorded operations to DisplayOps with
// device-space bounds.
func serializeDisplayList(dl *render.DisplayList) []DisplayOp {
	if dl == nil {
		return nil
	}
	ops := make([]DisplayOp, 0, dl.Len())
	for _, op := range dl.Ops() {
		params := sortedMap("bounds", serializeRect(op.DeviceBounds()))
		if op.Opacity != 1 {
			params["opacity"] = round2(op.Opacity)
		}
		if op.Focused {
			params["focused"] = true
		}
		switch op.Kind {
		case render.OpRect:
			if op.Fill != nil {
				params["fill"] = serializeBrush(op.Fill)
			}
			if op.Stroke != nil {
				params["stroke"] = serializeBrush(op.Stroke)
				params["strokeWidth"] = round2(op.StrokeWidth)
			}
		case render.OpText:
			params["text"] = op.Text
			params["color"] = serializeColor(op.Color)
		case render.OpImage:
			params["asset"] = op.Asset.ID()
		case render.OpBeginMask, render.OpEndMask:
			params["brush"] = serializeBrush(op.Fill)
		}
		ops = append(ops, DisplayOp{Op: op.Kind.String(), Source: op.Source, Params: params})
	}
	return ops
}

// TextOps returns the text of every text operation in list, in order.
func TextOps(list *render.DisplayList) []string {
	if list == nil {
		return nil
	}
	var texts []string
	for _, op := range list.Ops() {
		if op.Kind == render.OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// OpsFrom returns the operations recorded while rendering the element
// named source.
func OpsFrom(list *render.DisplayList, source string) []render.Op {
	if list == nil {
		return nil
	}
	var ops []render.Op
	for _, op := range list.Ops() {
		if op.Source == source {
			ops = append(ops, op)
		}
	}
	return ops
}

// --- Serialization helpers ---

func serializeRect(r geometry.Rect) map[string]any {
	return sortedMap(
		"x", round2(r.X),
		"y", round2(r.Y),
		"width", round2(r.Width),
		"height", round2(r.Height),
	)
}

func serializeBrush(b render.Brush) any {
	switch b := b.(type) {
	case render.SolidColorBrush:
		return serializeColor(b.Color)
	case render.LinearGradientBrush:
		stops := make([]string, 0, len(b.Stops))
		for _, s := range b.Stops {
			stops = append(stops, fmt.Sprintf("%s@%v", serializeColor(s.Color), round2(s.Offset)))
		}
		return sortedMap("gradient", stops)
	case nil:
		return nil
	default:
		return fmt.Sprintf("%T", b)
	}
}

func serializeColor(c render.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. Maps marshal
// with sorted keys, so the JSON output is stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
