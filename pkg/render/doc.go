// Package render defines what the element tree hands to a drawing backend.
//
// Elements never touch GPU state. BuildRenderTree threads an explicit
// [Context] value (transform, opacity, z) through the tree and records
// operations into a [DisplayList]; a backend replays the list. Textures and
// other device resources are owned through the [AssetManager] collaborator.
package render
