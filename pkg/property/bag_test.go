package property

import (
	"errors"
	"reflect"
	"testing"
)

func TestBag(t *testing.T) {
	var b Bag
	width := New(0.0)
	actual := New(0.0)
	b.Register("Width", width)
	b.RegisterReadOnly("ActualWidth", actual)

	if err := b.Set("Width", 100); err != nil {
		t.Fatalf("Set(Width): %v", err)
	}
	if width.Get() != 100 {
		t.Errorf("Width = %v, want 100", width.Get())
	}
	if v, ok := b.Get("Width"); !ok || v != 100.0 {
		t.Errorf("Get(Width) = %v, %v", v, ok)
	}

	if err := b.Set("ActualWidth", 5); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set(ActualWidth) err = %v, want ErrReadOnly", err)
	}
	if err := b.Set("Missing", 5); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Set(Missing) err = %v, want ErrUnknownProperty", err)
	}
	if !b.IsReadOnly("ActualWidth") || b.IsReadOnly("Width") {
		t.Error("IsReadOnly mismatch")
	}
	if got, want := b.Names(), []string{"Width", "ActualWidth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if _, ok := b.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
}

func TestBagDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	var b Bag
	b.Register("Name", New(""))
	b.Register("Name", New(""))
}
