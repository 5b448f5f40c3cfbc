// Package controls provides the concrete elements skins are built from:
// panels, text, images, borders, templated controls, content hosts and the
// items controls that generate one container per data item.
//
// Templated controls realize their visual tree lazily, the first time they
// are measured. Content and item generation follow the same rule: changes
// mark the control pending and the next layout pass does the work, so a
// burst of property changes costs one regeneration.
package controls
