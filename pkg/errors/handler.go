package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler installs h as the process-wide handler and returns the one it
// replaces. Nil restores a non-verbose LogHandler. Tests typically write
//
//	t.Cleanup(func() { errors.SetHandler(prev) })
func SetHandler(h ErrorHandler) (prev ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report sends err to the installed handler, stamping it if needed.
func Report(err *SkinError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// Reportf is shorthand for reporting a formatted error of the given kind.
func Reportf(op string, kind ErrorKind, element string, format string, args ...any) {
	Report(&SkinError{
		Op:      op,
		Kind:    kind,
		Element: element,
		Err:     fmtError(format, args...),
	})
}

// ReportPanic sends a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in op and stops it. It must be deferred
// directly:
//
//	defer errors.Recover("screen.Frame")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r), which lets the
// caller reset state or set named results after a panic.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
	})
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame. Frames inside the runtime and this package are left
// out, so a trace captured while recovering starts at the panicking code.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !internalFrame(frame) {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// packageDir is the directory of this package's sources, as recorded in
// stack frames.
var packageDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

// internalFrame reports runtime frames and frames from this package's
// non-test files.
func internalFrame(frame runtime.Frame) bool {
	if strings.HasPrefix(frame.Function, "runtime.") {
		return true
	}
	return filepath.Dir(frame.File) == packageDir && !strings.HasSuffix(frame.File, "_test.go")
}

// Recorder is an ErrorHandler that keeps everything it receives. It is
// safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	errs   []*SkinError
	panics []*PanicError
}

// HandleError implements ErrorHandler.
func (r *Recorder) HandleError(err *SkinError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic implements ErrorHandler.
func (r *Recorder) HandlePanic(err *PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns a copy of the recorded errors.
func (r *Recorder) Errors() []*SkinError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*SkinError(nil), r.errs...)
}

// Panics returns a copy of the recorded panics.
func (r *Recorder) Panics() []*PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PanicError(nil), r.panics...)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs, r.panics = nil, nil
}
