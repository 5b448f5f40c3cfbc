package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()

	r, err := Resolve(dir, "0.1.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Source != "" {
		t.Errorf("expected no source, got %q", r.Source)
	}
	if r.Name != filepath.Base(dir) {
		t.Errorf("expected name from directory, got %q", r.Name)
	}
	if r.Width != 1920 || r.Height != 1080 || r.Zoom != 1 {
		t.Errorf("unexpected size %vx%v zoom %v", r.Width, r.Height, r.Zoom)
	}
	if !r.StrictFocus {
		t.Error("strict focus should default to on")
	}
	if r.MaxAge != DefaultMaxAge {
		t.Errorf("expected default max age, got %v", r.MaxAge)
	}
	if opts := r.Options(); opts.LooseFocus || opts.Width != 1920 {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestResolveYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, `
skin:
  name: Cinema
  engine: "0.1"
screen:
  width: 1280
  height: 720
  zoom: 1.5
focus:
  strict: false
assets:
  max_age: 2m
debug:
  verbose: true
`)

	r, err := Resolve(dir, "0.1.3")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Name != "Cinema" || r.Source != filepath.Join(dir, YAMLFile) {
		t.Errorf("unexpected name/source %q %q", r.Name, r.Source)
	}
	if r.Width != 1280 || r.Height != 720 || r.Zoom != 1.5 {
		t.Errorf("unexpected size %vx%v zoom %v", r.Width, r.Height, r.Zoom)
	}
	if r.StrictFocus || !r.Options().LooseFocus {
		t.Error("focus.strict=false should select loose focus")
	}
	if r.MaxAge != 2*time.Minute || !r.Verbose {
		t.Errorf("unexpected max age %v verbose %v", r.MaxAge, r.Verbose)
	}
}

func TestResolveTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TOMLFile, `
[skin]
name = "Grid"

[screen]
width = 800.0

[assets]
max_age = "0s"
`)

	r, err := Resolve(dir, "0.1.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Name != "Grid" || r.Width != 800 || r.Height != 1080 {
		t.Errorf("unexpected %+v", r)
	}
	if r.MaxAge != 0 {
		t.Errorf("explicit zero max age should be kept, got %v", r.MaxAge)
	}
	if !strings.HasSuffix(r.Source, TOMLFile) {
		t.Errorf("expected toml source, got %q", r.Source)
	}
}

func TestYAMLTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, "skin:\n  name: fromyaml\n")
	writeFile(t, dir, TOMLFile, "[skin]\nname = \"fromtoml\"\n")

	cfg, _, err := LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Skin.Name != "fromyaml" {
		t.Errorf("expected yaml to win, got %q", cfg.Skin.Name)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad yaml", YAMLFile, "skin: [", "failed to parse skin.yaml"},
		{"bad toml", TOMLFile, "[skin", "failed to parse skin.toml"},
		{"negative size", YAMLFile, "screen:\n  width: -1\n", "must not be negative"},
		{"bad max age", YAMLFile, "assets:\n  max_age: soon\n", "invalid assets.max_age"},
		{"negative max age", YAMLFile, "assets:\n  max_age: -1s\n", "must not be negative"},
		{"bad engine", YAMLFile, "skin:\n  engine: latest\n", "not a semantic version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)
			_, err := Resolve(dir, "0.1.0")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckEngine(t *testing.T) {
	tests := []struct {
		required, running string
		tooOld            bool
	}{
		{"", "0.1.0", false},
		{"0.1", "0.1.0", false},
		{"v0.1.2", "0.1.10", false},
		{"0.2", "0.1.9", true},
		{"1.0.0", "0.9.0", true},
		{"0.1.0", "0.1.0-dev", false},
		{"0.1.0", "0.1.0-rc1", true},
	}
	for _, tt := range tests {
		err := CheckEngine(tt.required, tt.running)
		if got := errors.Is(err, ErrEngineTooOld); got != tt.tooOld {
			t.Errorf("CheckEngine(%q, %q) = %v, want too old %v", tt.required, tt.running, err, tt.tooOld)
		}
		if !tt.tooOld && err != nil {
			t.Errorf("CheckEngine(%q, %q) unexpected error %v", tt.required, tt.running, err)
		}
	}

	if err := CheckEngine("0.1", "dev"); err == nil || errors.Is(err, ErrEngineTooOld) {
		t.Errorf("expected invalid engine version error, got %v", err)
	}
}
