package property

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProperty is returned when a name is not registered in a Bag.
	ErrUnknownProperty = errors.New("property: unknown property")
	// ErrReadOnly is returned when writing a read-only registration by name.
	ErrReadOnly = errors.New("property: read-only property")
)

type bagEntry struct {
	prop     Property
	readOnly bool
}

// Bag maps names to the cells of one element.
//
// Names are kept in registration order so that generic operations such as
// copying are deterministic.
type Bag struct {
	names   []string
	entries map[string]bagEntry
}

// Register adds a writable property under name.
// Registering the same name twice panics.
func (b *Bag) Register(name string, p Property) {
	b.add(name, p, false)
}

// RegisterReadOnly adds a property that styles, setters and copies must not
// write, such as computed layout results.
func (b *Bag) RegisterReadOnly(name string, p Property) {
	b.add(name, p, true)
}

func (b *Bag) add(name string, p Property, readOnly bool) {
	if b.entries == nil {
		b.entries = make(map[string]bagEntry)
	}
	if _, exists := b.entries[name]; exists {
		panic("property: duplicate registration of " + name)
	}
	b.entries[name] = bagEntry{prop: p, readOnly: readOnly}
	b.names = append(b.names, name)
}

// Lookup returns the property registered under name.
func (b *Bag) Lookup(name string) (Property, bool) {
	e, ok := b.entries[name]
	return e.prop, ok
}

// IsReadOnly reports whether name was registered read-only.
func (b *Bag) IsReadOnly(name string) bool {
	return b.entries[name].readOnly
}

// Names returns the registered names in registration order.
func (b *Bag) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Get returns the current value of the named property.
func (b *Bag) Get(name string) (any, bool) {
	e, ok := b.entries[name]
	if !ok {
		return nil, false
	}
	return e.prop.Any(), true
}

// Set writes the named property.
func (b *Bag) Set(name string, v any) error {
	e, ok := b.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	if e.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	return e.prop.SetAny(v)
}
