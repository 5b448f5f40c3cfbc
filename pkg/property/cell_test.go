package property

import (
	"errors"
	"reflect"
	"testing"
)

func TestCellNotifiesEveryListenerInOrder(t *testing.T) {
	c := New(3)
	var calls []int
	for i := range 5 {
		c.Attach(func(old, value int) {
			calls = append(calls, i)
		})
	}

	c.Set(3) // equal to the previous value: still notifies

	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	if c.Get() != 3 {
		t.Errorf("Get() = %d, want 3", c.Get())
	}
}

func TestCellListenerSeesOldAndNewValue(t *testing.T) {
	c := New("a")
	var gotOld, gotNew string
	c.Attach(func(old, value string) {
		gotOld, gotNew = old, value
		if c.Get() != value {
			t.Errorf("value not stored before notification")
		}
	})
	c.Set("b")
	if gotOld != "a" || gotNew != "b" {
		t.Errorf("listener got (%q, %q), want (a, b)", gotOld, gotNew)
	}
}

func TestCellDetach(t *testing.T) {
	c := New(0)
	count := 0
	h := c.AttachFunc(func() { count++ })
	c.Set(1)
	c.Detach(h)
	c.Set(2)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// Unknown and repeated handles are ignored.
	c.Detach(h)
	c.Detach(Handle(999))
	if c.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", c.ListenerCount())
	}
}

func TestCellMutationDuringNotification(t *testing.T) {
	c := New(0)
	var order []string
	var second Handle
	c.Attach(func(int, int) {
		order = append(order, "first")
		c.Detach(second)
		c.AttachFunc(func() { order = append(order, "late") })
	})
	second = c.AttachFunc(func() { order = append(order, "second") })

	c.Set(1)
	if want := []string{"first"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("first Set order = %v, want %v", order, want)
	}

	order = nil
	c.Set(2)
	// The first listener attaches another "late" listener each time it runs.
	if want := []string{"first", "late"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("second Set order = %v, want %v", order, want)
	}
}

func TestZeroCell(t *testing.T) {
	var c Cell[float64]
	if c.Get() != 0 {
		t.Error("zero cell should hold zero value")
	}
	c.Set(1.5)
	if c.Get() != 1.5 {
		t.Errorf("Get() = %v, want 1.5", c.Get())
	}
}

type visibility int

func TestSetAnyConversions(t *testing.T) {
	f := New(0.0)
	if err := f.SetAny(12); err != nil {
		t.Fatalf("SetAny(int) on float64 cell: %v", err)
	}
	if f.Get() != 12 {
		t.Errorf("Get() = %v, want 12", f.Get())
	}

	v := New(visibility(0))
	if err := v.SetAny(2); err != nil {
		t.Fatalf("SetAny(int) on named int cell: %v", err)
	}
	if v.Get() != 2 {
		t.Errorf("Get() = %v, want 2", v.Get())
	}

	s := New("x")
	if err := s.SetAny(nil); err != nil {
		t.Fatalf("SetAny(nil): %v", err)
	}
	if s.Get() != "" {
		t.Errorf("nil should store zero value, got %q", s.Get())
	}
	if err := s.SetAny(65); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("SetAny(int) on string cell: err = %v, want ErrTypeMismatch", err)
	}

	a := New[any](nil)
	if err := a.SetAny([]int{1}); err != nil {
		t.Fatalf("SetAny on any cell: %v", err)
	}
	if a.Type() != reflect.TypeFor[any]() {
		t.Errorf("Type() = %v", a.Type())
	}
}
