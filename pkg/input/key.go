// Package input models the key events the input collaborator delivers to
// the focused element once per frame tick.
package input

import "github.com/go-drift/skin/pkg/focus"

// Code identifies a non-character key.
type Code int

const (
	// None marks a character key; see Key.Rune.
	None Code = iota
	Up
	Down
	Left
	Right
	Enter
	Back
	PageUp
	PageDown
	Home
	End
)

var codeNames = map[Code]string{
	None:     "None",
	Up:       "Up",
	Down:     "Down",
	Left:     "Left",
	Right:    "Right",
	Enter:    "Enter",
	Back:     "Back",
	PageUp:   "PageUp",
	PageDown: "PageDown",
	Home:     "Home",
	End:      "End",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "Unknown"
}

// Key is one key press. Handlers set Handled to stop further processing.
type Key struct {
	Code    Code
	Rune    rune
	Handled bool
}

// NewKey returns a press of a non-character key.
func NewKey(code Code) *Key {
	return &Key{Code: code}
}

// NewChar returns a press of a character key.
func NewChar(r rune) *Key {
	return &Key{Rune: r}
}

// Direction maps arrow keys to a focus direction.
func (k *Key) Direction() (focus.Direction, bool) {
	switch k.Code {
	case Up:
		return focus.Up, true
	case Down:
		return focus.Down, true
	case Left:
		return focus.Left, true
	case Right:
		return focus.Right, true
	}
	return 0, false
}

func (k *Key) String() string {
	if k.Code == None {
		return string(k.Rune)
	}
	return k.Code.String()
}
