package render

import "github.com/go-drift/skin/pkg/geometry"

// Asset is a handle to a device resource such as a decoded texture.
type Asset interface {
	// ID returns the source identifier the asset was loaded from.
	ID() string
	// IsAllocated reports whether the resource is ready to draw.
	IsAllocated() bool
	// Size returns the natural size, zero until allocated.
	Size() geometry.Size
}

// AssetManager is the collaborator that owns device resources. Elements
// call it from the UI thread only.
type AssetManager interface {
	// Load returns a handle for sourceID, starting a load if needed. The
	// handle may not be allocated yet; callers poll IsAllocated each frame.
	Load(sourceID string, useThumbnail bool) Asset
	// Remove releases the caller's reference to a handle.
	Remove(asset Asset)
	// CreateMask allocates an offscreen target for opacity-mask compositing.
	CreateMask(size geometry.Size, brush Brush) *MaskContext
}

// MaskContext is an offscreen target used to composite a subtree through
// an opacity-mask brush.
type MaskContext struct {
	Size  geometry.Size
	Brush Brush

	freed   bool
	release func(*MaskContext)
}

// NewMaskContext creates a mask target. release, if non-nil, is called
// once when the mask is freed.
func NewMaskContext(size geometry.Size, brush Brush, release func(*MaskContext)) *MaskContext {
	return &MaskContext{Size: size, Brush: brush, release: release}
}

// IsAllocated reports whether the target has not been freed.
func (m *MaskContext) IsAllocated() bool {
	return m != nil && !m.freed
}

// Free releases the target. It is safe to call more than once and on a nil
// mask.
func (m *MaskContext) Free() {
	if m == nil || m.freed {
		return
	}
	m.freed = true
	if m.release != nil {
		m.release(m)
	}
}
