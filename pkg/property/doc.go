// Package property implements the reactive value cells every element field
// is built on.
//
// A [Cell] is a plain owned field: there is no global property registry.
// Setting a cell always notifies, even when the new value equals the old
// one, and listeners run synchronously in attachment order on the goroutine
// that called Set.
//
// Elements that need name-based access to their cells (styles, bindings,
// deep copy) register them in a [Bag], which exposes them through the
// untyped [Property] view.
package property
