package core

import (
	"fmt"
	"strings"
)

// Dump renders the subtree as an indented outline with arranged bounds,
// for logs and the inspect command.
func Dump(root Element) string {
	var b strings.Builder
	dump(&b, root, 0)
	return b.String()
}

func dump(b *strings.Builder, el Element, depth int) {
	if el == nil {
		return
	}
	f := el.Framework()
	r := f.Bounds()
	fmt.Fprintf(b, "%s%s [%.0f,%.0f %.0fx%.0f]", strings.Repeat("  ", depth), f, r.X, r.Y, r.Width, r.Height)
	if !f.IsVisible() {
		b.WriteString(" hidden")
	}
	if f.HasFocus() {
		b.WriteString(" focused")
	}
	if f.NeedsLayout() {
		b.WriteString(" dirty")
	}
	b.WriteByte('\n')
	el.VisitChildren(func(c Element) bool {
		dump(b, c, depth+1)
		return true
	})
}
