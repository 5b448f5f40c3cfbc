package data

import (
	"reflect"
	"strings"
)

// Lookup is implemented by values that resolve named members themselves,
// for example elements exposing their properties by name.
type Lookup interface {
	Lookup(name string) (any, bool)
}

// Converter transforms a resolved value before it is stored.
type Converter func(value any) any

// Binding is an unresolved reference from a property to data.
//
// Templates keep bindings, never their resolved values, so every
// instantiation resolves against its own data context.
type Binding struct {
	// Path is a dotted member path. The empty path binds to the source itself.
	Path string
	// Source overrides the inherited data context when non-nil.
	Source any
	// Converter is applied to the resolved value.
	Converter Converter
	// Fallback is used when the path cannot be resolved.
	Fallback any
}

// Clone returns a copy of b. Source is shared, not copied.
func (b *Binding) Clone() *Binding {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Evaluate resolves the binding against context (or Source when set).
// The boolean reports whether the path resolved; when it did not, Fallback
// is returned.
func (b *Binding) Evaluate(context any) (any, bool) {
	src := context
	if b.Source != nil {
		src = b.Source
	}
	v, ok := Resolve(src, b.Path)
	if !ok {
		return b.Fallback, false
	}
	if b.Converter != nil {
		v = b.Converter(v)
	}
	return v, true
}

// Resolve walks a dotted path through maps, struct fields, zero-argument
// methods and Lookup implementations.
func Resolve(source any, path string) (any, bool) {
	if path == "" {
		return source, source != nil
	}
	cur := source
	for segment := range strings.SplitSeq(path, ".") {
		next, ok := member(cur, segment)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func member(v any, name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	if l, ok := v.(Lookup); ok {
		return l.Lookup(name)
	}
	if m, ok := v.(map[string]any); ok {
		r, found := m[name]
		return r, found
	}

	rv := reflect.ValueOf(v)
	if method := rv.MethodByName(name); method.IsValid() {
		if method.Type().NumIn() == 0 && method.Type().NumOut() == 1 {
			return method.Call(nil)[0].Interface(), true
		}
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		r := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !r.IsValid() {
			return nil, false
		}
		return r.Interface(), true
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}
