package data

import (
	"slices"
	"sync"
)

// ChangeType classifies a List mutation.
type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // Full replacement
)

// Change describes a modification to a List.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // For Add/Update, the new value
	Old   T // For Update/Remove, the old value
}

// List is an observable, goroutine-safe item collection suitable as an
// items source. Loaders may mutate it from any goroutine; subscribers are
// notified on the mutating goroutine and must marshal onto the UI thread
// themselves.
type List[T any] struct {
	mu        sync.Mutex
	items     []T
	listeners map[int]func(Change[T])
	nextID    int
}

// NewList creates a list holding items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: items}
}

// Lock and Unlock let Enumerate snapshot the list consistently.
func (l *List[T]) Lock()   { l.mu.Lock() }
func (l *List[T]) Unlock() { l.mu.Unlock() }

// Items returns a copy of all items.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Each implements Enumerable. The caller must hold the lock or accept a
// racy view; Enumerate takes the lock.
func (l *List[T]) Each(yield func(item any) bool) {
	for _, item := range l.items {
		if !yield(item) {
			return
		}
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (l *List[T]) At(i int) T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero
	}
	return l.items[i]
}

// Set replaces all items.
func (l *List[T]) Set(items []T) {
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeSet})
}

// Add appends an item.
func (l *List[T]) Add(item T) {
	l.mu.Lock()
	idx := len(l.items)
	l.items = append(l.items, item)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
}

// Insert inserts an item at index i, clamped to the valid range.
func (l *List[T]) Insert(i int, item T) {
	l.mu.Lock()
	i = max(0, min(i, len(l.items)))
	l.items = append(l.items[:i], append([]T{item}, l.items[i:]...)...)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeAdd, Index: i, Item: item})
}

// RemoveAt removes the item at index i.
func (l *List[T]) RemoveAt(i int) {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return
	}
	old := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
}

// Update modifies the item at index i.
func (l *List[T]) Update(i int, fn func(*T)) {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return
	}
	old := l.items[i]
	fn(&l.items[i])
	item := l.items[i]
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: item, Old: old})
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	l.notify(Change[T]{Type: ChangeClear})
}

// Observe adds a typed change listener and returns an unsubscribe function.
func (l *List[T]) Observe(fn func(Change[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listeners == nil {
		l.listeners = make(map[int]func(Change[T]))
	}
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

// Subscribe implements Notifier.
func (l *List[T]) Subscribe(fn func()) func() {
	return l.Observe(func(Change[T]) { fn() })
}

func (l *List[T]) notify(c Change[T]) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(Change[T]), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, l.listeners[id])
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
