package core

// Children returns the visual children of el.
func Children(el Element) []Element {
	var out []Element
	el.VisitChildren(func(c Element) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Walk visits el and its descendants depth-first, parents before children.
// Returning false from visit skips the element's subtree.
func Walk(el Element, visit func(Element) bool) {
	if el == nil || !visit(el) {
		return
	}
	el.VisitChildren(func(c Element) bool {
		Walk(c, visit)
		return true
	})
}

// FindElement returns the first element in depth-first order matching pred.
func FindElement(root Element, pred func(Element) bool) Element {
	if root == nil {
		return nil
	}
	if pred(root) {
		return root
	}
	var found Element
	root.VisitChildren(func(c Element) bool {
		found = FindElement(c, pred)
		return found == nil
	})
	return found
}

// FindByName searches root's subtree for an element named name.
func FindByName(root Element, name string) Element {
	return FindElement(root, func(el Element) bool {
		return el.Framework().Name.Get() == name
	})
}

// FindByType returns the first element of type T below root (root included).
func FindByType[T Element](root Element) (T, bool) {
	found := FindElement(root, func(el Element) bool {
		_, ok := el.(T)
		return ok
	})
	t, ok := found.(T)
	return t, ok
}

// IsAncestorOrSelf reports whether el is ancestor or el itself.
func IsAncestorOrSelf(ancestor, el Element) bool {
	for e := el; e != nil; e = e.Framework().Parent() {
		if e == ancestor {
			return true
		}
	}
	return false
}
