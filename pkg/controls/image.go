package controls

import (
	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/geometry"
	"github.com/go-drift/skin/pkg/property"
	"github.com/go-drift/skin/pkg/render"
)

// Image draws an asset loaded through the window's asset manager.
//
// Allocation is retried on every frame until the asset is ready; the
// first frame it is ready the element invalidates itself so layout picks
// up the natural size.
type Image struct {
	core.FrameworkElement

	Source       *property.Cell[string]
	UseThumbnail *property.Cell[bool]

	asset render.Asset
	sized bool
}

// NewImage returns an image showing source.
func NewImage(source string) *Image {
	i := &Image{}
	i.Init(i)
	i.Source.Set(source)
	return i
}

// Init initializes the image for self.
func (i *Image) Init(self core.Element) {
	i.FrameworkElement.Init(self)
	i.Source = property.New("")
	i.UseThumbnail = property.New(false)
	i.Bag().Register("Source", i.Source)
	i.Bag().Register("UseThumbnail", i.UseThumbnail)

	reload := func() {
		i.release()
		i.Invalidate()
	}
	i.Source.AttachFunc(reload)
	i.UseThumbnail.AttachFunc(reload)
}

// NewInstance implements core.Element.
func (i *Image) NewInstance() core.Element { return NewImage("") }

// Asset returns the requested asset, or nil.
func (i *Image) Asset() render.Asset {
	return i.asset
}

// Allocate implements core.Element. It requests the asset once; later
// calls wait for the asset manager to finish.
func (i *Image) Allocate() {
	if i.asset != nil || i.Source.Get() == "" {
		return
	}
	w := i.Window()
	if w == nil || w.Assets() == nil {
		return
	}
	i.asset = w.Assets().Load(i.Source.Get(), i.UseThumbnail.Get())
}

// IsAllocated implements core.Element.
func (i *Image) IsAllocated() bool {
	return i.asset != nil && i.asset.IsAllocated()
}

// Deallocate implements core.Element.
func (i *Image) Deallocate() {
	i.release()
	i.FrameworkElement.Deallocate()
}

func (i *Image) release() {
	if i.asset == nil {
		return
	}
	if w := i.Window(); w != nil && w.Assets() != nil {
		w.Assets().Remove(i.asset)
	}
	i.asset = nil
	i.sized = false
}

// MeasureOverride implements core.Element: the natural size of a ready
// asset, zero otherwise.
func (i *Image) MeasureOverride(geometry.Size) geometry.Size {
	if !i.IsAllocated() {
		return geometry.Size{}
	}
	return i.asset.Size().Scale(i.Zoom())
}

// RenderOverride implements core.Element.
func (i *Image) RenderOverride(ctx render.Context, list *render.DisplayList) {
	if !i.IsAllocated() {
		return
	}
	if !i.sized {
		i.sized = true
		i.Invalidate()
	}
	list.DrawImage(ctx, i.Bounds(), i.asset)
}
