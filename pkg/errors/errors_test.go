package errors

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestSkinErrorString(t *testing.T) {
	err := &SkinError{
		Op:   "controls.ItemsControl.Regenerate",
		Kind: KindTemplate,
		Err:  stderrors.New("no items host"),
	}
	got := err.Error()
	want := "controls.ItemsControl.Regenerate [template]: no items host"
	if got != want {
		t.Errorf("SkinError.Error() = %q, want %q", got, want)
	}
}

func TestSkinErrorWithElement(t *testing.T) {
	err := &SkinError{
		Op:      "core.NameScope.Register",
		Kind:    KindTree,
		Element: "MenuList",
		Err:     stderrors.New("duplicate name"),
	}
	got := err.Error()
	if !strings.Contains(got, "element=MenuList") {
		t.Errorf("error string %q should contain element name", got)
	}
}

func TestSkinErrorUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := &SkinError{Op: "x", Err: inner}
	if !stderrors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindLayout, "layout"},
		{KindTemplate, "template"},
		{KindRender, "render"},
		{KindAsset, "asset"},
		{KindTree, "tree"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "screen.Frame"
	if got, want := err.Error(), "panic in screen.Frame: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func record(t *testing.T) *Recorder {
	t.Helper()
	r := &Recorder{}
	prev := SetHandler(r)
	t.Cleanup(func() { SetHandler(prev) })
	return r
}

func TestReport(t *testing.T) {
	r := record(t)

	Report(&SkinError{
		Op:   "test.op",
		Kind: KindAsset,
		Err:  stderrors.New("missing"),
	})

	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Op != "test.op" {
		t.Errorf("Op = %q, want %q", errs[0].Op, "test.op")
	}
	if errs[0].Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportf(t *testing.T) {
	r := record(t)

	Reportf("core.Style.Apply", KindTree, "Button1", "unknown property %q", "Foo")
	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Element != "Button1" || errs[0].Kind != KindTree {
		t.Errorf("captured = %+v", errs[0])
	}
	if got := errs[0].Err.Error(); got != `unknown property "Foo"` {
		t.Errorf("Err = %q", got)
	}
}

func TestReportNil(t *testing.T) {
	r := record(t)

	Report(nil)
	ReportPanic(nil)
	if len(r.Errors()) != 0 || len(r.Panics()) != 0 {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	r := record(t)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	panics := r.Panics()
	if len(panics) != 1 {
		t.Fatalf("expected 1 panic, got %d", len(panics))
	}
	p := panics[0]
	if p.Value != "intentional test panic" || p.Op != "test.recover" {
		t.Errorf("unexpected panic %+v", p)
	}
	if p.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	if !strings.Contains(p.StackTrace, "TestRecover") {
		t.Errorf("stack should start at the panicking code, got:\n%s", p.StackTrace)
	}
	if strings.Contains(p.StackTrace, "runtime.gopanic") {
		t.Error("runtime frames should be left out")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	r := record(t)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(v any) { got = v })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
	if len(r.Panics()) != 1 {
		t.Error("the panic should be reported before the callback")
	}

	called := false
	func() {
		defer RecoverWithCallback("test.quiet", func(any) { called = true })
	}()
	if called {
		t.Error("callback must not run without a panic")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "TestCaptureStack") {
		t.Errorf("stack should contain the caller, got:\n%s", stack)
	}
	if strings.Contains(stack, "errors.CaptureStack") {
		t.Error("stack should not contain CaptureStack itself")
	}
}

func TestInternalFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame runtime.Frame
		want  bool
	}{
		{"runtime", runtime.Frame{Function: "runtime.gopanic", File: "/go/src/runtime/panic.go"}, true},
		{"package source", runtime.Frame{Function: "github.com/go-drift/skin/pkg/errors.Recover", File: filepath.Join(packageDir, "handler.go")}, true},
		{"package test", runtime.Frame{Function: "github.com/go-drift/skin/pkg/errors.TestRecover.func1", File: filepath.Join(packageDir, "errors_test.go")}, false},
		{"caller", runtime.Frame{Function: "github.com/go-drift/skin/pkg/core.(*Framework).Arrange", File: filepath.Join(filepath.Dir(packageDir), "core", "layout.go")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := internalFrame(tt.frame); got != tt.want {
				t.Errorf("internalFrame(%s) = %v, want %v", tt.frame.Function, got, tt.want)
			}
		})
	}
}

func TestSetHandler(t *testing.T) {
	r := &Recorder{}
	prev := SetHandler(r)
	defer SetHandler(prev)

	if Handler() != ErrorHandler(r) {
		t.Errorf("Handler() = %T, want the recorder", Handler())
	}
	if old := SetHandler(nil); old != ErrorHandler(r) {
		t.Errorf("SetHandler should return the replaced handler, got %T", old)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install a LogHandler, got %T", Handler())
	}
}

func TestRecorderReset(t *testing.T) {
	r := &Recorder{}
	r.HandleError(&SkinError{Op: "a"})
	r.HandlePanic(&PanicError{Op: "b"})
	errs := r.Errors()
	errs[0] = nil
	if r.Errors()[0] == nil {
		t.Error("Errors should return a copy")
	}
	r.Reset()
	if len(r.Errors()) != 0 || len(r.Panics()) != 0 {
		t.Error("Reset should drop everything")
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&SkinError{Op: "render.Load", Kind: KindAsset, Err: stderrors.New("gone")})
	if got, want := buf.String(), "[skin error] render.Load: gone\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(&SkinError{Op: "render.Load", Kind: KindAsset, Element: "Poster", Err: stderrors.New("gone"), StackTrace: "frame"})
	out := buf.String()
	if !strings.Contains(out, "[asset] element=Poster") || !strings.Contains(out, "Stack trace:") {
		t.Errorf("verbose output = %q", out)
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "screen.Frame", Value: "boom"})
	if !strings.HasPrefix(buf.String(), "[skin panic] screen.Frame: boom") {
		t.Errorf("panic output = %q", buf.String())
	}
}
