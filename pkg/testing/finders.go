package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/skin/pkg/controls"
	"github.com/go-drift/skin/pkg/core"
)

// Finder selects elements from a tree.
type Finder interface {
	// Evaluate returns the matches under root in pre-order.
	Evaluate(root core.Element) []core.Element
	// Description names the finder in failure messages.
	Description() string
}

// FinderResult is the outcome of ScreenTester.Find.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

// First returns the first match and panics when there is none.
func (r FinderResult) First() core.Element {
	return r.At(0)
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns match i and panics when i is out of range.
func (r FinderResult) At(i int) core.Element {
	if i < 0 || i >= len(r.elements) {
		name := "<nil finder>"
		if r.finder != nil {
			name = r.finder.Description()
		}
		panic(fmt.Sprintf("%s: no match at %d (%d found)", name, i, len(r.elements)))
	}
	return r.elements[i]
}

func (r FinderResult) All() []core.Element { return r.elements }
func (r FinderResult) Count() int           { return len(r.elements) }
func (r FinderResult) Exists() bool         { return len(r.elements) > 0 }

// Visible keeps the matches that are visible along with every ancestor.
func (r FinderResult) Visible() FinderResult {
	out := FinderResult{finder: r.finder}
	for _, el := range r.elements {
		shown := true
		for e := el; e != nil && shown; e = e.Framework().Parent() {
			shown = e.IsVisible()
		}
		if shown {
			out.elements = append(out.elements, el)
		}
	}
	return out
}

// matcher is a finder driven by a per-element predicate.
type matcher struct {
	desc  string
	match func(core.Element) bool
}

func (m matcher) Description() string { return m.desc }

func (m matcher) Evaluate(root core.Element) []core.Element {
	var found []core.Element
	core.Walk(root, func(e core.Element) bool {
		if m.match(e) {
			found = append(found, e)
		}
		return true
	})
	return found
}

// ByType matches elements whose dynamic type is T, for example
// ByType[*controls.ListViewItem]().
func ByType[T core.Element]() Finder {
	want := reflect.TypeFor[T]()
	return matcher{
		desc:  "ByType(" + want.String() + ")",
		match: func(e core.Element) bool { return reflect.TypeOf(e) == want },
	}
}

// ByName matches elements by Name. Names are unique per name scope only,
// so a tree of templated controls may hold several matches.
func ByName(name string) Finder {
	return matcher{
		desc:  fmt.Sprintf("ByName(%q)", name),
		match: func(e core.Element) bool { return e.Framework().Name.Get() == name },
	}
}

// ByText matches text blocks showing exactly text.
func ByText(text string) Finder {
	return textMatcher(fmt.Sprintf("ByText(%q)", text), func(s string) bool { return s == text })
}

// ByTextContaining matches text blocks whose text contains sub.
func ByTextContaining(sub string) Finder {
	return textMatcher(fmt.Sprintf("ByTextContaining(%q)", sub), func(s string) bool {
		return strings.Contains(s, sub)
	})
}

func textMatcher(desc string, ok func(string) bool) Finder {
	return matcher{desc: desc, match: func(e core.Element) bool {
		tb, isText := e.(*controls.TextBlock)
		return isText && ok(tb.Text.Get())
	}}
}

// Focused matches the element holding focus.
func Focused() Finder {
	return matcher{desc: "Focused()", match: func(e core.Element) bool {
		return e.Framework().HasFocus()
	}}
}

// ByItem matches the elements whose own data context is item, which for an
// items control are the generated containers.
func ByItem(item any) Finder {
	return matcher{desc: fmt.Sprintf("ByItem(%v)", item), match: func(e core.Element) bool {
		ctx := e.Framework().Context.Get()
		if ctx == nil || !reflect.TypeOf(ctx).Comparable() {
			return false
		}
		if item != nil && !reflect.TypeOf(item).Comparable() {
			return false
		}
		return ctx == item
	}}
}

// ByPredicate matches elements for which fn returns true.
func ByPredicate(fn func(core.Element) bool) Finder {
	return matcher{desc: "ByPredicate(...)", match: fn}
}

// Descendant matches elements satisfying inner that sit strictly below an
// element satisfying outer.
func Descendant(outer, inner Finder) Finder {
	return relation{
		desc: fmt.Sprintf("Descendant(of: %s, matching: %s)", outer.Description(), inner.Description()),
		eval: func(root core.Element) []core.Element {
			var found []core.Element
			seen := map[core.Element]bool{}
			for _, top := range outer.Evaluate(root) {
				top.VisitChildren(func(child core.Element) bool {
					for _, e := range inner.Evaluate(child) {
						if !seen[e] {
							seen[e] = true
							found = append(found, e)
						}
					}
					return true
				})
			}
			return found
		},
	}
}

// Ancestor matches elements satisfying outer that sit strictly above an
// element satisfying inner. Results keep the tree order of outer.
func Ancestor(inner, outer Finder) Finder {
	return relation{
		desc: fmt.Sprintf("Ancestor(of: %s, matching: %s)", inner.Description(), outer.Description()),
		eval: func(root core.Element) []core.Element {
			above := map[core.Element]bool{}
			for _, e := range inner.Evaluate(root) {
				for p := e.Framework().Parent(); p != nil; p = p.Framework().Parent() {
					above[p] = true
				}
			}
			if len(above) == 0 {
				return nil
			}
			var found []core.Element
			for _, e := range outer.Evaluate(root) {
				if above[e] {
					found = append(found, e)
				}
			}
			return found
		},
	}
}

// relation is a finder composed from other finders.
type relation struct {
	desc string
	eval func(core.Element) []core.Element
}

func (r relation) Description() string                       { return r.desc }
func (r relation) Evaluate(root core.Element) []core.Element { return r.eval(root) }
