package core

import (
	"reflect"
	"slices"

	"github.com/go-drift/skin/pkg/errors"
)

// Events fired by every element.
const (
	EventLoaded    = "Loaded"
	EventGotFocus  = "GotFocus"
	EventLostFocus = "LostFocus"
	EventVisible   = "Visible"
	EventHidden    = "Hidden"

	// EventFocusWithin fires on an element and each of its ancestors when
	// the element gains focus.
	EventFocusWithin = "FocusWithin"
)

// Command is an action bound to an element property, for example the
// Loaded command or a button's click command.
type Command func(el Element)

// Action runs in response to an event trigger.
type Action func(el Element)

// Trigger reacts to something happening on the element it is attached to.
// Triggers are cloned per element; Attach keeps any per-element state in
// its own closure.
type Trigger interface {
	Attach(el Element)
	Clone() Trigger
}

type handlerEntry struct {
	id int
	fn func()
}

// AddHandler registers fn for event and returns an id for RemoveHandler.
func (u *UIElement) AddHandler(event string, fn func()) int {
	if u.handlers == nil {
		u.handlers = make(map[string][]handlerEntry)
	}
	u.nextHandler++
	u.handlers[event] = append(u.handlers[event], handlerEntry{id: u.nextHandler, fn: fn})
	return u.nextHandler
}

// RemoveHandler unregisters a handler. Unknown ids are ignored.
func (u *UIElement) RemoveHandler(event string, id int) {
	u.handlers[event] = slices.DeleteFunc(u.handlers[event], func(h handlerEntry) bool {
		return h.id == id
	})
}

// FireEvent runs the handlers registered for event, in registration order.
// Handlers added while firing run from the next event on.
func (u *UIElement) FireEvent(event string) {
	for _, h := range slices.Clone(u.handlers[event]) {
		h.fn()
	}
}

// AddTrigger adds t to the element. On an initialized element the trigger
// is attached immediately.
func (u *UIElement) AddTrigger(t Trigger) {
	u.triggers = append(u.triggers, t)
	if u.triggersReady {
		t.Attach(u.self)
	}
}

// Triggers returns the element's triggers.
func (u *UIElement) Triggers() []Trigger {
	return u.triggers
}

func (u *UIElement) setupTriggers() {
	if u.triggersReady {
		return
	}
	u.triggersReady = true
	for _, t := range u.triggers {
		t.Attach(u.self)
	}
}

// EventTrigger runs its actions every time Event fires.
type EventTrigger struct {
	Event   string
	Actions []Action
}

// Attach implements Trigger.
func (t *EventTrigger) Attach(el Element) {
	actions := slices.Clone(t.Actions)
	el.Framework().AddHandler(t.Event, func() {
		for _, a := range actions {
			a(el)
		}
	})
}

// Clone implements Trigger.
func (t *EventTrigger) Clone() Trigger {
	return &EventTrigger{Event: t.Event, Actions: slices.Clone(t.Actions)}
}

// PropertyTrigger applies Setters while Property equals Value and restores
// the previous values when it stops matching.
type PropertyTrigger struct {
	Property string
	Value    any
	Setters  []Setter
}

// Attach implements Trigger.
func (t *PropertyTrigger) Attach(el Element) {
	fe := el.Framework()
	p, ok := fe.Bag().Lookup(t.Property)
	if !ok {
		errors.Reportf("core.PropertyTrigger", errors.KindTree, fe.String(),
			"unknown property %q", t.Property)
		return
	}
	setters := slices.Clone(t.Setters)
	var restore []func()
	update := func() {
		match := valuesEqual(p.Any(), t.Value)
		switch {
		case match && restore == nil:
			restore = []func(){}
			for _, s := range setters {
				restore = append(restore, s.applySaving(el))
			}
		case !match && restore != nil:
			for i := len(restore) - 1; i >= 0; i-- {
				restore[i]()
			}
			restore = nil
		}
	}
	p.AttachFunc(update)
	update()
}

// Clone implements Trigger.
func (t *PropertyTrigger) Clone() Trigger {
	return &PropertyTrigger{Property: t.Property, Value: t.Value, Setters: slices.Clone(t.Setters)}
}

// valuesEqual compares property values, treating all numeric kinds alike.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if fa, ok := asFloat(va); ok {
		if fb, ok := asFloat(vb); ok {
			return fa == fb
		}
	}
	if va.Type().Comparable() && vb.Type().Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
