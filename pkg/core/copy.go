package core

import (
	"maps"

	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/errors"
)

// Copier is implemented by elements with state beyond their named
// properties, typically children. CopyFrom runs after the properties,
// bindings, triggers and resources were copied.
type Copier interface {
	CopyFrom(src Element, cm *CopyManager)
}

// ValueCopier is implemented by property values that need a deep copy.
type ValueCopier interface {
	CopyValue(cm *CopyManager) any
}

// CopyManager deep-copies element graphs. Each source element is copied
// once, so shared references inside the graph stay shared in the copy.
type CopyManager struct {
	copies map[Element]Element
}

// NewCopyManager returns an empty manager.
func NewCopyManager() *CopyManager {
	return &CopyManager{copies: make(map[Element]Element)}
}

// DeepCopy returns an independent copy of el and its subtree. The copy is
// detached: no parent, no window, not initialized.
func DeepCopy(el Element) Element {
	return NewCopyManager().Copy(el)
}

// Copied returns the copy already made of src, or nil.
func (cm *CopyManager) Copied(src Element) Element {
	return cm.copies[src]
}

// Copy copies el through the manager.
func (cm *CopyManager) Copy(el Element) Element {
	if el == nil {
		return nil
	}
	if c, ok := cm.copies[el]; ok {
		return c
	}
	dst := el.NewInstance()
	cm.copies[el] = dst

	src, df := el.Framework(), dst.Framework()
	for _, name := range src.bag.Names() {
		if src.bag.IsReadOnly(name) {
			continue
		}
		if _, bound := src.bindings[name]; bound {
			continue
		}
		v, _ := src.bag.Get(name)
		if err := df.bag.Set(name, cm.CopyValue(v)); err != nil {
			errors.Reportf("core.Copy", errors.KindTree, src.String(), "copy %q: %v", name, err)
		}
	}
	for _, name := range src.bindingOrder {
		if err := df.SetBinding(name, src.bindings[name].Clone()); err != nil {
			errors.Reportf("core.Copy", errors.KindTree, src.String(), "%v", err)
		}
	}
	for _, t := range src.triggers {
		df.triggers = append(df.triggers, t.Clone())
	}
	if src.resources != nil {
		df.resources = make(ResourceDictionary, len(src.resources))
		for k, v := range maps.All(src.resources) {
			df.resources[k] = cm.CopyValue(v)
		}
	}
	if c, ok := dst.(Copier); ok {
		c.CopyFrom(el, cm)
	}
	if src.names != nil {
		BuildNameScope(dst)
	}
	return dst
}

// CopyValue copies a property value: elements deeply, bindings as fresh
// clones, ValueCopier values through their hook. Everything else is shared.
func (cm *CopyManager) CopyValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Element:
		return cm.Copy(x)
	case *data.Binding:
		return x.Clone()
	case ValueCopier:
		return x.CopyValue(cm)
	}
	return v
}
