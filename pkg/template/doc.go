// Package template holds unrealized element subtrees and instantiates
// them.
//
// A template owns a single root element that is never attached to a
// window. LoadContent returns a deep copy of that root with the template's
// resources merged in, a fresh name scope and the window propagated, so
// two instantiations never share nodes, property cells or bindings:
//
//	tpl := template.NewDataTemplate(reflect.TypeFor[Movie](), card)
//	a := tpl.LoadContent(win)
//	b := tpl.LoadContent(win) // independent of a
package template
