package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/skin/cmd/skin/internal/termview"
)

func init() {
	RegisterCommand(&Command{
		Name:  "view",
		Short: "Browse a skin in the terminal",
		Long: `Run a skin interactively in the terminal.

Arrow keys move focus, Enter activates, Esc and Backspace send Back,
PgUp/PgDn/Home/End page through lists. Press q to quit. The status line
shows the focused element and the average frame time.

Flags:
  --width N       Override screen.width
  --height N      Override screen.height
  --zoom N        Override screen.zoom
  --load-delay D  Simulated poster decode time (default 300ms)`,
		Usage: "skin view [dir] [--width N] [--height N] [--zoom N] [--load-delay D]",
		Run:   runView,
	})
}

func runView(args []string) error {
	flags, positional, err := splitArgs(args)
	if err != nil {
		return err
	}
	dir := "."
	if len(positional) > 0 {
		dir = positional[0]
	}
	delay := 300 * time.Millisecond
	if v, ok := flags["load-delay"]; ok {
		if delay, err = time.ParseDuration(v); err != nil {
			return err
		}
	}

	s, err := openSession(dir, flags, delay)
	if err != nil {
		return err
	}
	defer s.close()

	_, err = tea.NewProgram(termview.NewModel(s.screen, s.cfg.Name), tea.WithAltScreen()).Run()
	return err
}
