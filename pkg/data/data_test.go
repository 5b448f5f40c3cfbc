package data

import (
	"iter"
	"reflect"
	"strconv"
	"sync"
	"testing"
)

type movie struct {
	Title    string
	Year     int
	Selected bool
}

func (m movie) Label() string { return m.Title + " (" + strconv.Itoa(m.Year) + ")" }

type folder struct {
	name     string
	children []any
}

func (f *folder) SubItems() any { return f.children }

type selectable bool

func (s selectable) IsSelected() bool { return bool(s) }

func TestEnumerate(t *testing.T) {
	seq := iter.Seq[any](func(yield func(any) bool) {
		for _, v := range []any{"x", "y"} {
			if !yield(v) {
				return
			}
		}
	})
	arr := [2]int{7, 8}
	tests := []struct {
		name   string
		source any
		want   []any
	}{
		{"nil", nil, nil},
		{"any slice", []any{1, "a"}, []any{1, "a"}},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}},
		{"array pointer", &arr, []any{7, 8}},
		{"iterator", seq, []any{"x", "y"}},
		{"list", NewList(3, 4), []any{3, 4}},
		{"scalar", 42, nil},
	}
	for _, tt := range tests {
		if got := Enumerate(tt.source); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: Enumerate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type lockedSource struct {
	sync.Mutex
	locked bool
	items  []any
}

func (s *lockedSource) Each(yield func(any) bool) {
	s.locked = !s.TryLock()
	for _, it := range s.items {
		if !yield(it) {
			return
		}
	}
}

func TestEnumerateHoldsSyncRoot(t *testing.T) {
	s := &lockedSource{items: []any{1}}
	Enumerate(s)
	if !s.locked {
		t.Error("expected Enumerate to hold the source lock while iterating")
	}
}

func TestProbes(t *testing.T) {
	if !IsSelected(movie{Selected: true}) {
		t.Error("struct field Selected should be probed")
	}
	if !IsSelected(map[string]any{"Selected": true}) {
		t.Error("map key Selected should be probed")
	}
	if !IsSelected(selectable(true)) || IsSelected(selectable(false)) {
		t.Error("Selectable interface should be probed")
	}
	if IsSelected("plain") {
		t.Error("plain values are never selected")
	}

	f := &folder{children: []any{"a"}}
	sub, ok := SubItems(f)
	if !ok || !reflect.DeepEqual(sub, []any{"a"}) {
		t.Errorf("SubItems(folder) = %v, %v", sub, ok)
	}
	if _, ok := SubItems(map[string]any{"SubItems": []int{1}}); !ok {
		t.Error("map key SubItems should be probed")
	}
	if _, ok := SubItems(movie{}); ok {
		t.Error("movie has no sub items")
	}
}

func TestBindingEvaluate(t *testing.T) {
	ctx := map[string]any{
		"Movie": &movie{Title: "Alien", Year: 1979},
	}
	tests := []struct {
		binding Binding
		want    any
		ok      bool
	}{
		{Binding{Path: "Movie.Title"}, "Alien", true},
		{Binding{Path: "Movie.Label"}, "Alien (1979)", true},
		{Binding{Path: "Movie.Missing", Fallback: "?"}, "?", false},
		{Binding{Path: "Movie.Year", Converter: func(v any) any { return v.(int) + 1 }}, 1980, true},
		{Binding{Path: "Title", Source: movie{Title: "Heat"}}, "Heat", true},
	}
	for _, tt := range tests {
		got, ok := tt.binding.Evaluate(ctx)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Evaluate(%q) = %v, %v; want %v, %v", tt.binding.Path, got, ok, tt.want, tt.ok)
		}
	}

	if v, ok := Resolve("self", ""); !ok || v != "self" {
		t.Errorf("empty path should resolve to the source, got %v", v)
	}
}

func TestBindingClone(t *testing.T) {
	b := &Binding{Path: "A"}
	c := b.Clone()
	c.Path = "B"
	if b.Path != "A" {
		t.Error("Clone should not share the struct")
	}
	var nilBinding *Binding
	if nilBinding.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestListNotifications(t *testing.T) {
	l := NewList[string]()
	var changes []ChangeType
	unsubscribe := l.Observe(func(c Change[string]) { changes = append(changes, c.Type) })
	count := 0
	l.Subscribe(func() { count++ })

	l.Add("a")
	l.Insert(0, "b")
	l.Update(1, func(s *string) { *s = "c" })
	l.RemoveAt(0)
	unsubscribe()
	l.Clear()

	want := []ChangeType{ChangeAdd, ChangeAdd, ChangeUpdate, ChangeRemove}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}
	if count != 5 {
		t.Errorf("Subscribe listener called %d times, want 5", count)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestListOutOfRange(t *testing.T) {
	l := NewList(1, 2)
	l.RemoveAt(5)
	l.Update(-1, func(*int) { t.Error("update callback must not run") })
	if l.At(9) != 0 {
		t.Error("At out of range should return zero")
	}
	if got := l.Items(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Items() = %v", got)
	}
}
