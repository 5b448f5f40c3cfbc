package core

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/skin/pkg/errors"
)

// ErrDuplicateName is returned when a scope already holds a name.
var ErrDuplicateName = stderrors.New("core: duplicate name")

// NameScope maps element names to elements. Templates get a scope per
// instantiation so lookups never leak between copies.
type NameScope struct {
	names map[string]Element
	order []string
}

// NewNameScope returns an empty scope.
func NewNameScope() *NameScope {
	return &NameScope{names: make(map[string]Element)}
}

// Register adds el under name. The first registration wins.
func (s *NameScope) Register(name string, el Element) error {
	if _, exists := s.names[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.names[name] = el
	s.order = append(s.order, name)
	return nil
}

// Find returns the element registered under name, or nil.
func (s *NameScope) Find(name string) Element {
	if s == nil {
		return nil
	}
	return s.names[name]
}

// Names returns the registered names in registration order.
func (s *NameScope) Names() []string {
	return s.order
}

// BuildNameScope registers every named element below root (root included)
// in a new scope owned by root. Duplicate names are reported and skipped.
func BuildNameScope(root Element) *NameScope {
	scope := NewNameScope()
	Walk(root, func(el Element) bool {
		if name := el.Framework().Name.Get(); name != "" {
			if err := scope.Register(name, el); err != nil {
				errors.Reportf("core.BuildNameScope", errors.KindTree, el.Framework().String(), "%v", err)
			}
		}
		return true
	})
	root.Framework().names = scope
	return scope
}

// NameScope returns the scope owned by the element, or nil.
func (u *UIElement) NameScope() *NameScope {
	return u.names
}

// FindName resolves name from el: the nearest enclosing scope first, then
// a depth-first search of el's subtree.
func FindName(el Element, name string) Element {
	if el == nil || name == "" {
		return nil
	}
	for e := el; e != nil; e = e.Framework().Parent() {
		if scope := e.Framework().names; scope != nil {
			if found := scope.Find(name); found != nil {
				return found
			}
			break
		}
	}
	return FindByName(el, name)
}
