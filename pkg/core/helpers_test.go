package core

import (
	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/render"
)

type testWindow struct {
	metrics     Metrics
	invalidated []Element
	focused     Element
	posted      []func()
}

func newTestWindow(w, h float64) *testWindow {
	return &testWindow{metrics: Metrics{Width: w, Height: h, Zoom: 1}}
}

func (w *testWindow) Invalidate(el Element)       { w.invalidated = append(w.invalidated, el) }
func (w *testWindow) Metrics() Metrics            { return w.metrics }
func (w *testWindow) Assets() render.AssetManager { return nil }
func (w *testWindow) FocusedElement() Element     { return w.focused }
func (w *testWindow) Post(fn func())              { w.posted = append(w.posted, fn) }

func (w *testWindow) SetFocusedElement(el Element) {
	if w.focused == el {
		return
	}
	old := w.focused
	w.focused = el
	if old != nil {
		old.Framework().SetFocusState(false)
	}
	if el != nil {
		el.Framework().SetFocusState(true)
	}
}

// testBox overlays its children and reports at least its intrinsic size.
type testBox struct {
	FrameworkElement
	children []Element
	size     geometry.Size
}

func newTestBox(w, h float64, children ...Element) *testBox {
	b := &testBox{size: geometry.Size{Width: w, Height: h}}
	b.Init(b)
	for _, c := range children {
		b.add(c)
	}
	return b
}

func (b *testBox) add(c Element) {
	b.children = append(b.children, c)
	b.AttachChild(c)
}

func (b *testBox) setSize(w, h float64) {
	b.size = geometry.Size{Width: w, Height: h}
	b.Invalidate()
}

func (b *testBox) NewInstance() Element {
	return newTestBox(b.size.Width, b.size.Height)
}

func (b *testBox) VisitChildren(visit func(Element) bool) {
	for _, c := range b.children {
		if !visit(c) {
			return
		}
	}
}

func (b *testBox) MeasureOverride(available geometry.Size) geometry.Size {
	return b.FrameworkElement.MeasureOverride(available).Max(b.size)
}

func (b *testBox) CopyFrom(src Element, cm *CopyManager) {
	for _, c := range src.(*testBox).children {
		b.add(cm.Copy(c))
	}
}

// mount attaches root to w and runs the first layout pass.
func mount(root Element, w *testWindow) {
	f := root.Framework()
	f.SetWindow(w)
	f.Initialize()
	f.UpdateLayout()
}

func recordErrors(t interface{ Cleanup(func()) }) *errors.Recorder {
	h := &errors.Recorder{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}
