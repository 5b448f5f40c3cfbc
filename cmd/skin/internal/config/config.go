// Package config loads the optional skin.yaml or skin.toml that sits next
// to a skin and resolves it into screen options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/skin/pkg/screen"
)

// File names probed by LoadOptional, in order.
const (
	YAMLFile = "skin.yaml"
	TOMLFile = "skin.toml"
)

// ErrEngineTooOld is returned by Resolve when the skin requires a newer
// engine than the one running.
var ErrEngineTooOld = errors.New("skin requires a newer engine")

// Config mirrors the on-disk configuration. Both formats share the same
// keys.
type Config struct {
	Skin   SkinConfig   `yaml:"skin" toml:"skin"`
	Screen ScreenConfig `yaml:"screen" toml:"screen"`
	Focus  FocusConfig  `yaml:"focus" toml:"focus"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
	Debug  DebugConfig  `yaml:"debug" toml:"debug"`
}

// SkinConfig contains skin metadata.
type SkinConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	// Engine is the minimum engine version, e.g. "v0.2" or "0.2.1".
	Engine string `yaml:"engine,omitempty" toml:"engine,omitempty"`
}

// ScreenConfig is the logical window size.
type ScreenConfig struct {
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty" toml:"zoom,omitempty"`
}

// FocusConfig controls directional navigation. Strict is a pointer so an
// absent key keeps the default.
type FocusConfig struct {
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty"`
}

// AssetsConfig configures the content manager.
type AssetsConfig struct {
	// MaxAge is a Go duration string such as "30s".
	MaxAge string `yaml:"max_age,omitempty" toml:"max_age,omitempty"`
}

// DebugConfig toggles diagnostics.
type DebugConfig struct {
	Verbose bool `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	Source      string // config file used, empty when none
	Name        string
	Engine      string
	Width       float64
	Height      float64
	Zoom        float64
	StrictFocus bool
	MaxAge      time.Duration
	Verbose     bool
}

// DefaultMaxAge is used when assets.max_age is not set.
const DefaultMaxAge = 30 * time.Second

// LoadOptional reads skin.yaml or skin.toml from dir. A missing file yields
// an empty Config and an empty path.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, YAMLFile)
	data, err := os.ReadFile(path)
	if err == nil {
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", YAMLFile, err)
		}
		return &cfg, path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to read %s: %w", YAMLFile, err)
	}

	path = filepath.Join(dir, TOMLFile)
	data, err = os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", TOMLFile, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", TOMLFile, err)
	}
	return &cfg, path, nil
}

// Resolve loads the configuration in dir (if present), applies defaults and
// checks the engine requirement against engineVersion.
func Resolve(dir, engineVersion string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Skin.Name)
	if name == "" {
		name = filepath.Base(dir)
	}

	r := &Resolved{
		Root:        dir,
		Source:      source,
		Name:        name,
		Engine:      strings.TrimSpace(cfg.Skin.Engine),
		Width:       cfg.Screen.Width,
		Height:      cfg.Screen.Height,
		Zoom:        cfg.Screen.Zoom,
		StrictFocus: true,
		MaxAge:      DefaultMaxAge,
		Verbose:     cfg.Debug.Verbose,
	}
	if cfg.Focus.Strict != nil {
		r.StrictFocus = *cfg.Focus.Strict
	}
	if r.Width < 0 || r.Height < 0 || r.Zoom < 0 {
		return nil, fmt.Errorf("screen size and zoom must not be negative (got %vx%v zoom %v)", r.Width, r.Height, r.Zoom)
	}
	if r.Width == 0 {
		r.Width = screen.DefaultWidth
	}
	if r.Height == 0 {
		r.Height = screen.DefaultHeight
	}
	if r.Zoom == 0 {
		r.Zoom = 1
	}
	if s := strings.TrimSpace(cfg.Assets.MaxAge); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid assets.max_age %q: %w", s, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("assets.max_age must not be negative (got %s)", d)
		}
		r.MaxAge = d
	}

	if err := CheckEngine(r.Engine, engineVersion); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckEngine reports whether running satisfies the minimum version
// required. An empty requirement always passes. A development build
// ("-dev" prerelease) satisfies any requirement on its release line.
func CheckEngine(required, running string) error {
	if required == "" {
		return nil
	}
	req := canonical(required)
	if !semver.IsValid(req) {
		return fmt.Errorf("invalid skin.engine %q: not a semantic version", required)
	}
	run := canonical(running)
	if !semver.IsValid(run) {
		return fmt.Errorf("invalid engine version %q", running)
	}
	if semver.Prerelease(run) == "-dev" {
		run = semver.Canonical(strings.TrimSuffix(run, "-dev"))
	}
	if semver.Compare(run, req) < 0 {
		return fmt.Errorf("%w: requires %s, running %s", ErrEngineTooOld, req, running)
	}
	return nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Options converts r into screen options.
func (r *Resolved) Options() screen.Options {
	return screen.Options{
		Width:      r.Width,
		Height:     r.Height,
		Zoom:       r.Zoom,
		LooseFocus: !r.StrictFocus,
	}
}
