package layout

import (
	"slices"

	"github.com/go-drift/skin/pkg/errors"
)

// Node is an element the pipeline can bring up to date.
type Node interface {
	// Depth is the distance from the layout root. Roots have depth 0.
	Depth() int
	// NeedsLayout reports whether the node is still invalidated.
	NeedsLayout() bool
	// UpdateLayout re-runs the node's layout pass.
	UpdateLayout()
}

// maxFlushPasses bounds how often Flush re-sorts nodes scheduled while it was
// running. A tree that keeps invalidating itself is reported and left for
// the next frame instead of spinning.
const maxFlushPasses = 32

// PipelineOwner tracks elements that were invalidated since the last frame.
//
// Invalidation never lays out synchronously. The host schedules the element
// here and the frame loop calls Flush, which runs UpdateLayout on each
// scheduled node, parents first. A parent's pass may bring a scheduled
// descendant up to date as a side effect; such nodes are skipped.
type PipelineOwner struct {
	dirty       []Node        // processed depth-first
	dirtySet    map[Node]bool // O(1) dedup check
	needsLayout bool
	needsRender bool
}

// Schedule queues node for the next Flush. Scheduling an already queued
// node is a no-op.
func (p *PipelineOwner) Schedule(node Node) {
	if node == nil {
		return
	}
	if p.dirtySet == nil {
		p.dirtySet = make(map[Node]bool)
	}
	p.needsRender = true
	if p.dirtySet[node] {
		return
	}
	p.dirtySet[node] = true
	p.dirty = append(p.dirty, node)
	p.needsLayout = true
}

// MarkNeedsRender requests a new display list without any layout work, for
// example after an asset finished loading.
func (p *PipelineOwner) MarkNeedsRender() {
	p.needsRender = true
}

// NeedsLayout reports if any nodes are queued.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsRender reports whether anything changed since the last ConsumeRender.
func (p *PipelineOwner) NeedsRender() bool {
	return p.needsRender
}

// ConsumeRender returns NeedsRender and clears it.
func (p *PipelineOwner) ConsumeRender() bool {
	r := p.needsRender
	p.needsRender = false
	return r
}

// Pending returns the number of queued nodes.
func (p *PipelineOwner) Pending() int {
	return len(p.dirty)
}

// Flush runs UpdateLayout on every queued node in depth order (parents
// first). Nodes scheduled during the flush are processed in a further pass.
func (p *PipelineOwner) Flush() {
	if !p.needsLayout {
		return
	}
	for pass := 0; len(p.dirty) > 0; pass++ {
		if pass == maxFlushPasses {
			errors.Reportf("layout.PipelineOwner.Flush", errors.KindLayout, "",
				"layout did not settle after %d passes, %d nodes deferred", maxFlushPasses, len(p.dirty))
			return
		}
		slices.SortStableFunc(p.dirty, func(a, b Node) int {
			return a.Depth() - b.Depth()
		})

		// Take current batch and clear for next iteration
		batch := p.dirty
		p.dirty = nil
		p.dirtySet = nil

		for _, node := range batch {
			// Only update if still dirty - an ancestor's pass may have
			// already brought this node up to date.
			if node.NeedsLayout() {
				node.UpdateLayout()
			}
		}
	}
	p.needsLayout = false
}

// Clear drops every queued node without laying it out, used when the root
// is replaced.
func (p *PipelineOwner) Clear() {
	p.dirty = nil
	p.dirtySet = nil
	p.needsLayout = false
	p.needsRender = true
}
