package demo

import (
	"context"
	"testing"
	"time"

	"github.com/go-drift/skin/pkg/controls"
	"github.com/go-drift/skin/pkg/input"
	skintest "github.com/go-drift/skin/pkg/testing"
)

func TestBuild(t *testing.T) {
	tester := skintest.NewScreenTesterWithT(t)
	movies := Movies()
	if err := tester.PumpTree(Build(movies)); err != nil {
		t.Fatalf("PumpTree failed: %v", err)
	}

	for _, name := range []string{NameTitle, NameGenres, NameMovies, NameDetails} {
		if !tester.Find(skintest.ByName(name)).Exists() {
			t.Errorf("missing element %q", name)
		}
	}
	lv := tester.Find(skintest.ByName(NameMovies)).First().(*controls.ListView)
	if got := len(lv.Containers()); got != movies.Len() {
		t.Fatalf("expected %d posters, got %d", movies.Len(), got)
	}

	details := tester.Find(skintest.ByName(NameDetails)).First().(*controls.TextBlock)
	lv.SetFocusOnItem(movies.At(2))
	tester.Pump()
	if got := details.Text.Get(); got != "Heat (1995)" {
		t.Errorf("details = %q, want Heat (1995)", got)
	}

	tester.SendKey(input.Right)
	if got := details.Text.Get(); got != "Ran (1985)" {
		t.Errorf("after Right, details = %q, want Ran (1985)", got)
	}

	movies.Add(Movie{Title: "Zodiac", Year: 2007, Poster: "posters/zodiac"})
	tester.Pump()
	if got := len(lv.Containers()); got != 6 {
		t.Errorf("expected regeneration to 6 posters, got %d", got)
	}
	if got := details.Text.Get(); got != "Ran (1985)" {
		t.Errorf("focus should survive regeneration, details = %q", got)
	}
}

func TestLoader(t *testing.T) {
	load := Loader(0)
	ctx := context.Background()

	full, err := load(ctx, "posters/heat", false)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	again, _ := load(ctx, "posters/heat", false)
	if full != again {
		t.Errorf("sizes must be stable, got %v and %v", full, again)
	}
	if full.Height != full.Width*3/2 {
		t.Errorf("expected 2:3 poster, got %v", full)
	}
	thumb, _ := load(ctx, "posters/heat", true)
	if thumb.Width != full.Width/2 {
		t.Errorf("thumbnail width = %v, want %v", thumb.Width, full.Width/2)
	}

	if _, err := load(ctx, "", false); err == nil {
		t.Error("empty source should fail")
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Loader(time.Hour)(canceled, "posters/ran", false); err == nil {
		t.Error("canceled load should fail")
	}
}
