package layout

import (
	"reflect"
	"testing"
)

type testNode struct {
	name   string
	depth  int
	dirty  bool
	log    *[]string
	onRun  func()
	passes int
}

func (n *testNode) Depth() int        { return n.depth }
func (n *testNode) NeedsLayout() bool { return n.dirty }
func (n *testNode) UpdateLayout() {
	n.passes++
	n.dirty = false
	*n.log = append(*n.log, n.name)
	if n.onRun != nil {
		n.onRun()
	}
}

func TestFlushRunsParentsFirst(t *testing.T) {
	var log []string
	p := &PipelineOwner{}
	child := &testNode{name: "child", depth: 2, dirty: true, log: &log}
	root := &testNode{name: "root", depth: 0, dirty: true, log: &log}
	mid := &testNode{name: "mid", depth: 1, dirty: true, log: &log}

	p.Schedule(child)
	p.Schedule(root)
	p.Schedule(mid)
	p.Schedule(child) // duplicate

	if !p.NeedsLayout() || p.Pending() != 3 {
		t.Fatalf("Pending() = %d, want 3", p.Pending())
	}
	p.Flush()

	if want := []string{"root", "mid", "child"}; !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
	if p.NeedsLayout() {
		t.Error("NeedsLayout should be false after Flush")
	}
}

func TestFlushSkipsNodesCleanedByAncestor(t *testing.T) {
	var log []string
	p := &PipelineOwner{}
	child := &testNode{name: "child", depth: 1, dirty: true, log: &log}
	parent := &testNode{name: "parent", depth: 0, dirty: true, log: &log}
	parent.onRun = func() { child.dirty = false }

	p.Schedule(child)
	p.Schedule(parent)
	p.Flush()

	if child.passes != 0 {
		t.Errorf("child ran %d times, want 0", child.passes)
	}
}

func TestFlushProcessesNodesScheduledDuringFlush(t *testing.T) {
	var log []string
	p := &PipelineOwner{}
	parent := &testNode{name: "parent", depth: 0, log: &log}
	child := &testNode{name: "child", depth: 1, dirty: true, log: &log}
	child.onRun = func() {
		parent.dirty = true
		p.Schedule(parent)
	}

	p.Schedule(child)
	p.Flush()

	if want := []string{"child", "parent"}; !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestRenderFlag(t *testing.T) {
	p := &PipelineOwner{}
	if p.NeedsRender() {
		t.Error("fresh pipeline should not need render")
	}
	p.MarkNeedsRender()
	if !p.ConsumeRender() {
		t.Error("ConsumeRender should report the pending request")
	}
	if p.ConsumeRender() {
		t.Error("ConsumeRender should clear the flag")
	}
}
