package data

import (
	"iter"
	"reflect"
	"sync"
)

// Enumerable is a collection that can be iterated item by item.
type Enumerable interface {
	// Each calls yield for every item until yield returns false.
	Each(yield func(item any) bool)
}

// Notifier is implemented by sources that report their own mutations.
type Notifier interface {
	// Subscribe registers fn and returns a function that removes it.
	// fn may be called from any goroutine.
	Subscribe(fn func()) (unsubscribe func())
}

// Selectable is implemented by items that carry a selection flag.
type Selectable interface {
	IsSelected() bool
}

// Hierarchical is implemented by items that own a nested items source.
type Hierarchical interface {
	SubItems() any
}

// Enumerate snapshots source into a slice. Supported sources are nil,
// Enumerable, iter.Seq[any], slices and arrays of any element type.
// Anything else enumerates as empty. Sources that are also a sync.Locker
// are read under their lock.
func Enumerate(source any) []any {
	if source == nil {
		return nil
	}
	if l, ok := source.(sync.Locker); ok {
		l.Lock()
		defer l.Unlock()
	}
	switch s := source.(type) {
	case []any:
		out := make([]any, len(s))
		copy(out, s)
		return out
	case Enumerable:
		var out []any
		s.Each(func(item any) bool {
			out = append(out, item)
			return true
		})
		return out
	case iter.Seq[any]:
		var out []any
		for item := range s {
			out = append(out, item)
		}
		return out
	}
	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}

// IsSelected probes item for a selection flag: the Selectable interface, a
// bool field or map entry named "Selected", in that order.
func IsSelected(item any) bool {
	if s, ok := item.(Selectable); ok {
		return s.IsSelected()
	}
	if v, ok := Resolve(item, "Selected"); ok {
		b, _ := v.(bool)
		return b
	}
	return false
}

// SubItems probes item for a nested items source: the Hierarchical
// interface, a field or map entry named "SubItems", in that order.
func SubItems(item any) (any, bool) {
	if h, ok := item.(Hierarchical); ok {
		sub := h.SubItems()
		return sub, sub != nil
	}
	v, ok := Resolve(item, "SubItems")
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
