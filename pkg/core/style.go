package core

import (
	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/errors"
)

// Setter assigns Value to a named property, on the styled element or, when
// TargetName is set, on the element with that name in its scope.
//
// Element values are deep-copied for every target so styled elements never
// share children. Binding values become bindings on the target.
type Setter struct {
	TargetName string
	Property   string
	Value      any
}

// Apply performs the assignment on el. Failures are reported, not returned:
// a broken setter must not abort the rest of a style.
func (s Setter) Apply(el Element) {
	target := s.target(el)
	if target == nil {
		return
	}
	fe := target.Framework()
	if b, ok := s.Value.(*data.Binding); ok {
		if err := fe.SetBinding(s.Property, b.Clone()); err != nil {
			errors.Reportf("core.Setter", errors.KindTree, fe.String(), "%v", err)
		}
		return
	}
	v := s.Value
	if child, ok := v.(Element); ok {
		v = DeepCopy(child)
	}
	if err := fe.Bag().Set(s.Property, v); err != nil {
		errors.Reportf("core.Setter", errors.KindTree, fe.String(), "set %q: %v", s.Property, err)
	}
}

// applySaving applies the setter and returns a func restoring the value it
// replaced.
func (s Setter) applySaving(el Element) func() {
	target := s.target(el)
	if target == nil {
		return func() {}
	}
	bag := target.Framework().Bag()
	old, ok := bag.Get(s.Property)
	s.Apply(el)
	if !ok {
		return func() {}
	}
	return func() {
		if err := bag.Set(s.Property, old); err != nil {
			errors.Reportf("core.Setter", errors.KindTree, target.Framework().String(),
				"restore %q: %v", s.Property, err)
		}
	}
}

func (s Setter) target(el Element) Element {
	if s.TargetName == "" {
		return el
	}
	target := FindName(el, s.TargetName)
	if target == nil {
		errors.Reportf("core.Setter", errors.KindTree, el.Framework().String(),
			"setter target %q not found", s.TargetName)
	}
	return target
}

// Style is a reusable list of setters. BasedOn setters are applied first,
// so a derived style overrides its base.
type Style struct {
	BasedOn *Style
	Setters []Setter
}

// Apply runs the style's setters on el.
func (s *Style) Apply(el Element) {
	if s == nil {
		return
	}
	s.BasedOn.Apply(el)
	for _, setter := range s.Setters {
		setter.Apply(el)
	}
}

// Setter returns the effective setter for property on the styled element
// itself, searching the base chain.
func (s *Style) Setter(property string) (Setter, bool) {
	for st := s; st != nil; st = st.BasedOn {
		for i := len(st.Setters) - 1; i >= 0; i-- {
			if set := st.Setters[i]; set.TargetName == "" && set.Property == property {
				return set, true
			}
		}
	}
	return Setter{}, false
}

// HasSetter reports whether the style sets property on the styled element.
func (s *Style) HasSetter(property string) bool {
	_, ok := s.Setter(property)
	return ok
}
