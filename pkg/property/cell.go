package property

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is returned when an untyped value cannot be stored in a cell.
var ErrTypeMismatch = errors.New("property: type mismatch")

// Handle identifies an attached listener. The zero Handle is never issued.
type Handle uint64

// Listener is called after a cell's value was replaced.
type Listener[T any] func(old, value T)

// Property is the untyped view of a cell, used where the value type is only
// known at runtime.
type Property interface {
	// Type returns the declared value type.
	Type() reflect.Type
	// Any returns the current value boxed in an interface.
	Any() any
	// SetAny stores v after converting it to the declared type.
	// A nil v stores the zero value.
	SetAny(v any) error
	// AttachFunc registers a listener that ignores the values.
	AttachFunc(fn func()) Handle
	// Detach removes a listener. Unknown handles are ignored.
	Detach(h Handle)
}

type listenerEntry[T any] struct {
	handle  Handle
	fn      Listener[T]
	removed bool
}

// Cell is an observable value of type T.
//
// The zero Cell holds the zero value of T and has no listeners.
type Cell[T any] struct {
	value     T
	listeners []*listenerEntry[T]
	nextID    Handle
}

// New returns a cell holding initial.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set overwrites the value and notifies every attached listener once, in
// attachment order. Listeners attached while notifying are first called on
// the next Set; listeners detached while notifying are skipped.
func (c *Cell[T]) Set(value T) {
	old := c.value
	c.value = value
	if len(c.listeners) == 0 {
		return
	}
	snapshot := make([]*listenerEntry[T], len(c.listeners))
	copy(snapshot, c.listeners)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(old, value)
	}
}

// Attach registers fn and returns the handle used to detach it.
func (c *Cell[T]) Attach(fn Listener[T]) Handle {
	c.nextID++
	c.listeners = append(c.listeners, &listenerEntry[T]{handle: c.nextID, fn: fn})
	return c.nextID
}

// AttachFunc registers a listener that does not need the values.
func (c *Cell[T]) AttachFunc(fn func()) Handle {
	return c.Attach(func(T, T) { fn() })
}

// Detach removes the listener registered under h.
// Detaching an unknown or already detached handle is a no-op.
func (c *Cell[T]) Detach(h Handle) {
	for i, l := range c.listeners {
		if l.handle == h {
			l.removed = true
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of attached listeners.
func (c *Cell[T]) ListenerCount() int {
	return len(c.listeners)
}

// Type returns the declared value type.
func (c *Cell[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Any returns the current value as an interface.
func (c *Cell[T]) Any() any {
	return c.value
}

// SetAny converts v to T and calls Set.
func (c *Cell[T]) SetAny(v any) error {
	converted, err := Convert[T](v)
	if err != nil {
		return err
	}
	c.Set(converted)
	return nil
}

// Convert coerces v to T. Nil converts to the zero value; numeric values
// convert between numeric kinds; string kinds convert between each other.
func Convert[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	target := reflect.TypeFor[T]()
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target) {
		return rv.Interface().(T), nil
	}
	if convertible(rv.Type(), target) {
		return rv.Convert(target).Interface().(T), nil
	}
	return zero, fmt.Errorf("%w: cannot store %T as %s", ErrTypeMismatch, v, target)
}

func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	switch {
	case isNumeric(from.Kind()) && isNumeric(to.Kind()):
		return true
	case from.Kind() == reflect.String && to.Kind() == reflect.String:
		return true
	case from.Kind() == reflect.Bool && to.Kind() == reflect.Bool:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
