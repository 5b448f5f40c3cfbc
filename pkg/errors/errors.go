// Package errors provides structured error reporting for the skin engine.
//
// The engine never escalates failures to its callers: missing templates,
// absent presenters and unavailable assets degrade to "nothing renders here".
// Problems worth knowing about are reported to a process-wide ErrorHandler
// instead, which defaults to logging on stderr.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind groups reported errors.
type ErrorKind int

const (
	KindUnknown  ErrorKind = iota
	KindConfig             // skin configuration
	KindLayout             // measure or arrange
	KindTemplate           // a template that could not be instantiated
	KindRender             // render-tree construction
	KindAsset              // asset load or release
	KindTree               // tree structure, e.g. a name used twice in one scope
	KindPanic              // a recovered panic
)

var kindNames = [...]string{"unknown", "config", "layout", "template", "render", "asset", "tree", "panic"}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// SkinError is a failure the engine degraded around. Op names the failing
// operation as package.Type.Method; Element is the name of the element
// involved, when it has one.
type SkinError struct {
	Op         string
	Kind       ErrorKind
	Err        error
	Element    string
	StackTrace string
	Timestamp  time.Time
}

func (e *SkinError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SkinError) Unwrap() error { return e.Err }

// PanicError is a panic stopped by Recover.
type PanicError struct {
	Op         string // the guarded operation, e.g. "screen.Frame"
	Value      any
	StackTrace string
	Timestamp  time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives everything passed to Report and ReportPanic.
// Handlers are called on the reporting goroutine.
type ErrorHandler interface {
	HandleError(err *SkinError)
	HandlePanic(err *PanicError)
}
