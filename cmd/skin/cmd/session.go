package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-drift/skin/cmd/skin/internal/config"
	"github.com/go-drift/skin/cmd/skin/internal/demo"
	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/screen"
)

// session is a shown screen hosting the demo skin.
type session struct {
	cfg    *config.Resolved
	screen *screen.Screen
	assets *render.ContentManager
}

// openSession resolves the configuration in dir, applies --width,
// --height and --zoom overrides and mounts the demo skin. loadDelay
// simulates slow poster decoding.
func openSession(dir string, flags map[string]string, loadDelay time.Duration) (*session, error) {
	cfg, err := config.Resolve(dir, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for name, dst := range map[string]*float64{"width": &cfg.Width, "height": &cfg.Height, "zoom": &cfg.Zoom} {
		s, ok := flags[name]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("--%s must be a positive number (got %q)", name, s)
		}
		*dst = v
	}

	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Verbose})

	assets := render.NewContentManager(demo.Loader(loadDelay), render.ContentManagerOptions{
		MaxAge: cfg.MaxAge,
	})
	opts := cfg.Options()
	opts.Assets = assets
	s := screen.New(opts)
	s.SetRoot(demo.Build(demo.Movies()))
	s.Show()
	return &session{cfg: cfg, screen: s, assets: assets}, nil
}

// settle runs frames until the screen is idle or timeout passes. Asset
// loads complete on other goroutines, so an idle screen with loads in
// flight keeps polling.
func (s *session) settle(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for {
		s.screen.Frame(time.Now())
		total, allocated, _ := s.assets.Stats()
		if !s.screen.NeedsFrame() && allocated == total {
			return
		}
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (s *session) close() {
	s.screen.Hide()
	s.assets.Close()
}
