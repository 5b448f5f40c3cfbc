package core

import (
	"fmt"

	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/property"
)

// SetBinding binds the named property to data. The binding is evaluated
// against the element's data context before the next measure or render,
// and again whenever the context changes.
func (f *FrameworkElement) SetBinding(name string, b *data.Binding) error {
	if _, ok := f.bag.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", property.ErrUnknownProperty, name)
	}
	if f.bag.IsReadOnly(name) {
		return fmt.Errorf("%w: %q", property.ErrReadOnly, name)
	}
	if f.bindings == nil {
		f.bindings = make(map[string]*data.Binding)
	}
	if _, exists := f.bindings[name]; !exists {
		f.bindingOrder = append(f.bindingOrder, name)
	}
	f.bindings[name] = b
	f.bindingsDirty = true
	f.Invalidate()
	return nil
}

// Binding returns the binding of the named property, or nil.
func (f *FrameworkElement) Binding(name string) *data.Binding {
	return f.bindings[name]
}

// ClearBinding removes a binding. The last resolved value stays.
func (f *FrameworkElement) ClearBinding(name string) {
	if _, ok := f.bindings[name]; !ok {
		return
	}
	delete(f.bindings, name)
	for i, n := range f.bindingOrder {
		if n == name {
			f.bindingOrder = append(f.bindingOrder[:i], f.bindingOrder[i+1:]...)
			break
		}
	}
}

// RefreshBindings forces bindings in the subtree to be evaluated again,
// for data mutated in place.
func (f *FrameworkElement) RefreshBindings() {
	f.invalidateBindings()
	f.Invalidate()
}

// Lookup implements data.Lookup so bindings can address element properties.
func (f *FrameworkElement) Lookup(name string) (any, bool) {
	return f.bag.Get(name)
}

func (f *FrameworkElement) invalidateBindings() {
	f.bindingsDirty = true
	f.self.VisitChildren(func(c Element) bool {
		c.Framework().invalidateBindings()
		return true
	})
}

// resolveBindings writes every binding's value into its property. Paths
// that do not resolve and have no fallback leave the property untouched.
func (f *FrameworkElement) resolveBindings() {
	if !f.bindingsDirty {
		return
	}
	f.bindingsDirty = false
	if len(f.bindings) == 0 {
		return
	}
	ctx := f.DataContext()
	for _, name := range f.bindingOrder {
		v, ok := f.bindings[name].Evaluate(ctx)
		if !ok && v == nil {
			continue
		}
		if err := f.bag.Set(name, v); err != nil {
			errors.Reportf("core.Binding", errors.KindTree, f.String(), "bind %q: %v", name, err)
		}
	}
}
