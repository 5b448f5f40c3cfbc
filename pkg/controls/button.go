package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/property"
)

// Button is a focusable content control that runs Command on Enter.
type Button struct {
	ContentControl

	Command *property.Cell[core.Command]
}

// NewButton returns a button showing content.
func NewButton(content any, cmd core.Command) *Button {
	b := &Button{}
	b.Init(b)
	b.Content.Set(content)
	b.Command.Set(cmd)
	return b
}

// Init initializes the button for self.
func (b *Button) Init(self core.Element) {
	b.ContentControl.Init(self)
	b.Command = property.New[core.Command](nil)
	b.Bag().Register("Command", b.Command)
	b.Focusable.Set(true)
}

// NewInstance implements core.Element.
func (b *Button) NewInstance() core.Element { return NewButton(nil, nil) }

// OnKeyPressed implements core.Element.
func (b *Button) OnKeyPressed(key *input.Key) {
	if key.Code != input.Enter || !b.IsEnabled() {
		return
	}
	if cmd := b.Command.Get(); cmd != nil {
		cmd(b.Self())
		key.Handled = true
	}
}
