// Package data adapts arbitrary application data to the element tree.
//
// Items sources are probed rather than typed: any slice, array, iterator or
// [Enumerable] can feed an items control, and individual items may expose a
// "selected" flag or "sub-items" through an interface, a struct field or a
// map key. [Binding] resolves dotted paths against such data.
package data
