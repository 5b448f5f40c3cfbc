// Package demo builds the sample media-browser skin used by the inspect
// and view commands.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/go-drift/skin/pkg/controls"
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/data"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/render"
	"github.com/go-drift/skin/pkg/template"
)

// Element names inside the demo tree.
const (
	NameTitle   = "title"
	NameGenres  = "genres"
	NameMovies  = "movies"
	NameDetails = "details"
)

// Movie is one poster in the catalog row.
type Movie struct {
	Title    string
	Year     int
	Poster   string
	Selected bool
}

// Genre is one node of the genre tree.
type Genre struct {
	Title    string
	SubItems []Genre
}

// Movies returns the sample catalog. The third movie starts selected.
func Movies() *data.List[Movie] {
	return data.NewList(
		Movie{Title: "Alien", Year: 1979, Poster: "posters/alien"},
		Movie{Title: "Brazil", Year: 1985, Poster: "posters/brazil"},
		Movie{Title: "Heat", Year: 1995, Poster: "posters/heat", Selected: true},
		Movie{Title: "Ran", Year: 1985, Poster: "posters/ran"},
		Movie{Title: "Solaris", Year: 1972, Poster: "posters/solaris"},
	)
}

// Genres returns the sample genre tree.
func Genres() []Genre {
	return []Genre{
		{Title: "Drama", SubItems: []Genre{{Title: "Crime"}, {Title: "War"}}},
		{Title: "Science Fiction", SubItems: []Genre{{Title: "Space"}}},
		{Title: "Comedy"},
	}
}

var (
	accent     = render.RGB(0x3d, 0x7e, 0xff)
	panelBrush = render.SolidColorBrush{Color: render.RGB(0x20, 0x22, 0x28)}
)

// Build returns the demo tree over movies.
func Build(movies *data.List[Movie]) core.Element {
	title := controls.NewTextBlock("Skin demo")
	title.Name.Set(NameTitle)
	title.FontSize.Set(26)

	details := controls.NewTextBlock("")
	details.Name.Set(NameDetails)

	body := controls.NewStackPanel(controls.Horizontal, genreTree(), movieRow(movies, details))
	body.Spacing.Set(20)

	root := controls.NewStackPanel(controls.Vertical, title, body, details)
	root.Spacing.Set(10)
	root.Background.Set(panelBrush)
	root.Margin.Set(geometry.Thickness{Left: 20, Top: 20, Right: 20, Bottom: 20})
	return root
}

func genreTree() core.Element {
	label := controls.NewTextBlock("")
	label.SetBinding("Text", &data.Binding{Path: "Title"})

	tv := controls.NewTreeView()
	tv.Name.Set(NameGenres)
	tv.Width.Set(240)
	tv.ItemTemplate.Set(template.NewDataTemplate(nil, label))
	tv.ItemsSource.Set(Genres())
	return tv
}

func movieRow(movies *data.List[Movie], details *controls.TextBlock) core.Element {
	poster := controls.NewImage("")
	poster.Width.Set(120)
	poster.Height.Set(180)
	poster.UseThumbnail.Set(true)
	poster.SetBinding("Source", &data.Binding{Path: "Poster"})

	caption := controls.NewTextBlock("")
	caption.SetBinding("Text", &data.Binding{Path: "Title"})

	card := controls.NewBorder(controls.NewStackPanel(controls.Vertical, poster, caption))
	card.Padding.Set(geometry.Thickness{Left: 4, Top: 4, Right: 4, Bottom: 4})
	card.BorderThickness.Set(2)
	card.BorderBrush.Set(render.SolidColorBrush{Color: render.ColorWhite})

	row := controls.NewStackPanel(controls.Horizontal)
	row.Spacing.Set(12)

	lv := controls.NewListView()
	lv.Name.Set(NameMovies)
	lv.ItemTemplate.Set(template.NewDataTemplate(nil, card))
	lv.ItemsPanel.Set(template.NewItemsPanelTemplate(row))
	lv.ItemContainerStyle.Set(&core.Style{Setters: []core.Setter{
		{Property: "SelectedBackground", Value: render.SolidColorBrush{Color: accent}},
	}})
	lv.SelectionChanged.Set(func(core.Element) {
		if m, ok := lv.CurrentItem.Get().(Movie); ok {
			details.Text.Set(Describe(m))
		}
	})
	lv.ItemsSource.Set(movies)
	return lv
}

// Describe returns the details line for m.
func Describe(m Movie) string {
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Loader is a render.Loader that pretends to decode posters. Every source
// gets a stable 2:3 size derived from its name after delay.
func Loader(delay time.Duration) render.Loader {
	return func(ctx context.Context, sourceID string, thumbnail bool) (geometry.Size, error) {
		if sourceID == "" {
			return geometry.Size{}, fmt.Errorf("empty source")
		}
		select {
		case <-ctx.Done():
			return geometry.Size{}, ctx.Err()
		case <-time.After(delay):
		}
		h := fnv.New32a()
		h.Write([]byte(sourceID))
		w := float64(200 + h.Sum32()%5*20)
		if thumbnail {
			w /= 2
		}
		return geometry.Size{Width: w, Height: w * 3 / 2}, nil
	}
}
