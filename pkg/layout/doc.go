// Package layout holds the pieces of the two-pass layout protocol that do
// not depend on the element tree: alignment arithmetic and the pipeline
// owner that queues invalidated elements until the next frame.
package layout
