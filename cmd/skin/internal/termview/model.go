package termview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/skin/pkg/input"
	"github.com/go-drift/skin/pkg/screen"
)

// FrameInterval is the tick period of the view loop.
const FrameInterval = time.Second / 30

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is a bubbletea model hosting a screen. Keys are delivered to the
// screen as they arrive; a frame runs on every tick that has work.
type Model struct {
	screen *screen.Screen
	title  string
	cols   int
	rows   int
	grid   *Grid
	stale  bool
}

// NewModel returns a model showing s.
func NewModel(s *screen.Screen, title string) *Model {
	return &Model{screen: s, title: title, cols: 80, rows: 24, stale: true}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Two columns and rows go to the frame, one row to the status line.
		m.cols, m.rows = max(msg.Width-2, 1), max(msg.Height-3, 1)
		m.stale = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if key := KeyFor(msg); key != nil {
			m.screen.HandleKey(key)
		}
	case tickMsg:
		m.Step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

// Step runs a frame when the screen or the terminal size changed.
func (m *Model) Step(now time.Time) {
	if !m.stale && !m.screen.NeedsFrame() {
		return
	}
	m.stale = false
	m.grid = Rasterize(m.screen.Frame(now), m.cols, m.rows)
}

// Grid returns the last rasterized frame, or nil.
func (m *Model) Grid() *Grid { return m.grid }

// View implements tea.Model.
func (m *Model) View() string {
	if m.grid == nil {
		return "loading..."
	}
	return m.grid.Render() + "\n" + statusStyle.Render(m.Status())
}

// Status returns the status line: title, focused element and frame timing.
func (m *Model) Status() string {
	focused := "none"
	if el := m.screen.FocusedElement(); el != nil {
		focused = el.Framework().String()
	}
	t := m.screen.Timing()
	return fmt.Sprintf("%s | focus %s | frames %d | avg %s worst %s | q quits",
		m.title, focused, m.screen.Frames(),
		t.Average().Round(time.Microsecond), t.Worst().Round(time.Microsecond))
}

// KeyFor maps a terminal key to a skin key, or nil when it has no
// equivalent.
func KeyFor(msg tea.KeyMsg) *input.Key {
	switch msg.Type {
	case tea.KeyUp:
		return input.NewKey(input.Up)
	case tea.KeyDown:
		return input.NewKey(input.Down)
	case tea.KeyLeft:
		return input.NewKey(input.Left)
	case tea.KeyRight:
		return input.NewKey(input.Right)
	case tea.KeyEnter:
		return input.NewKey(input.Enter)
	case tea.KeyEsc, tea.KeyBackspace:
		return input.NewKey(input.Back)
	case tea.KeyPgUp:
		return input.NewKey(input.PageUp)
	case tea.KeyPgDown:
		return input.NewKey(input.PageDown)
	case tea.KeyHome:
		return input.NewKey(input.Home)
	case tea.KeyEnd:
		return input.NewKey(input.End)
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return input.NewChar(msg.Runes[0])
		}
	}
	return nil
}
