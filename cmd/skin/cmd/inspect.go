package cmd

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/go-drift/skin/cmd/skin/internal/termview"
	"github.com/go-drift/skin/pkg/core"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Print the laid-out element tree",
		Long: `Lay out a skin headlessly and print its element tree with the
arranged bounds of every element, followed by a text preview.

The configuration is read from skin.yaml or skin.toml in the skin
directory (default: the current directory). The preview matches the
terminal size; when stdout is not a terminal it is only printed with
--preview and uses 80x24.

Flags:
  --width N     Override screen.width
  --height N    Override screen.height
  --zoom N      Override screen.zoom
  --preview     Always print the preview`,
		Usage: "skin inspect [dir] [--width N] [--height N] [--zoom N] [--preview]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	flags, positional, err := splitArgs(args, "preview")
	if err != nil {
		return err
	}
	dir := "."
	if len(positional) > 0 {
		dir = positional[0]
	}

	s, err := openSession(dir, flags, 0)
	if err != nil {
		return err
	}
	defer s.close()
	s.settle(2 * time.Second)

	m := s.screen.Metrics()
	fmt.Fprintf(stdout, "Skin: %s (%gx%g, zoom %g)\n", s.cfg.Name, m.Width, m.Height, m.Zoom)
	if s.cfg.Source != "" {
		fmt.Fprintf(stdout, "Config: %s\n", s.cfg.Source)
	}
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, core.Dump(s.screen.Root()))

	cols, rows, ok := previewSize()
	if !ok && flags["preview"] == "" {
		return nil
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, termview.Rasterize(s.screen.LastFrame(), cols, rows).String())
	return nil
}

// previewSize returns the terminal size, or 80x24 and false when stdout
// is not a terminal.
func previewSize() (cols, rows int, ok bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, false
	}
	return w, h, true
}
