package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/skin/pkg/errors"
	"github.com/go-drift/skin/pkg/geometry"
)

// Loader decodes the resource for sourceID and returns its natural size.
// It runs off the UI thread.
type Loader func(ctx context.Context, sourceID string, thumbnail bool) (geometry.Size, error)

// ContentManagerOptions configures a ContentManager.
type ContentManagerOptions struct {
	// MaxAge is how long an unreferenced asset stays cached. Zero frees on
	// the next Collect.
	MaxAge time.Duration
	// RetryDelay is how long a failed load waits before it is retried.
	// Defaults to one second.
	RetryDelay time.Duration
	// Go starts a load. Defaults to running it on a new goroutine.
	Go func(func())
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type assetState int

const (
	assetLoading assetState = iota
	assetReady
	assetFailed
	assetFreed
)

type assetKey struct {
	id        string
	thumbnail bool
}

type managedAsset struct {
	key      assetKey
	state    assetState
	size     geometry.Size
	refs     int
	lastUsed time.Time
	failedAt time.Time
	loadGen  int
}

func (a *managedAsset) ID() string          { return a.key.id }
func (a *managedAsset) IsAllocated() bool   { return a.state == assetReady }
func (a *managedAsset) Size() geometry.Size { return a.size }
func (a *managedAsset) String() string      { return fmt.Sprintf("asset(%s)", a.key.id) }

type loadResult struct {
	asset *managedAsset
	gen   int
	size  geometry.Size
	err   error
}

// ContentManager is an in-process AssetManager. Loads run asynchronously;
// their results are published on the UI thread by Pump, so asset state only
// ever changes between frames.
type ContentManager struct {
	loader Loader
	opts   ContentManagerOptions
	ctx    context.Context
	cancel context.CancelFunc

	assets map[assetKey]*managedAsset
	masks  map[*MaskContext]struct{}

	mu   sync.Mutex
	done []loadResult
}

// NewContentManager creates a manager that loads through loader.
func NewContentManager(loader Loader, opts ContentManagerOptions) *ContentManager {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.Go == nil {
		opts.Go = func(fn func()) { go fn() }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ContentManager{
		loader: loader,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		assets: make(map[assetKey]*managedAsset),
		masks:  make(map[*MaskContext]struct{}),
	}
}

// Load implements AssetManager.
func (m *ContentManager) Load(sourceID string, useThumbnail bool) Asset {
	key := assetKey{id: sourceID, thumbnail: useThumbnail}
	a, ok := m.assets[key]
	if !ok || a.state == assetFreed {
		a = &managedAsset{key: key}
		m.assets[key] = a
		m.start(a)
	}
	a.refs++
	a.lastUsed = m.opts.Now()
	return a
}

func (m *ContentManager) start(a *managedAsset) {
	a.state = assetLoading
	a.loadGen++
	gen := a.loadGen
	key := a.key
	m.opts.Go(func() {
		size, err := m.loader(m.ctx, key.id, key.thumbnail)
		m.mu.Lock()
		m.done = append(m.done, loadResult{asset: a, gen: gen, size: size, err: err})
		m.mu.Unlock()
	})
}

// Remove implements AssetManager. Removing a handle that was not produced
// by this manager, or removing more often than loading, is ignored.
func (m *ContentManager) Remove(asset Asset) {
	a, ok := asset.(*managedAsset)
	if !ok || a.refs == 0 {
		return
	}
	a.refs--
	a.lastUsed = m.opts.Now()
}

// CreateMask implements AssetManager.
func (m *ContentManager) CreateMask(size geometry.Size, brush Brush) *MaskContext {
	mask := NewMaskContext(size, brush, func(mc *MaskContext) {
		delete(m.masks, mc)
	})
	m.masks[mask] = struct{}{}
	return mask
}

// Pump publishes finished loads and restarts failed ones whose retry delay
// elapsed. It must be called on the UI thread and returns how many assets
// became allocated.
func (m *ContentManager) Pump() int {
	m.mu.Lock()
	done := m.done
	m.done = nil
	m.mu.Unlock()

	ready := 0
	now := m.opts.Now()
	for _, r := range done {
		a := r.asset
		if r.gen != a.loadGen || a.state != assetLoading {
			continue
		}
		if r.err != nil {
			a.state = assetFailed
			a.failedAt = now
			errors.Report(&errors.SkinError{
				Op:   "render.ContentManager.Load",
				Kind: errors.KindAsset,
				Err:  fmt.Errorf("%s: %w", a.key.id, r.err),
			})
			continue
		}
		a.state = assetReady
		a.size = r.size
		ready++
	}
	for _, a := range m.assets {
		if a.state == assetFailed && a.refs > 0 && now.Sub(a.failedAt) >= m.opts.RetryDelay {
			m.start(a)
		}
	}
	return ready
}

// Collect frees unreferenced assets older than MaxAge and returns how many
// were freed.
func (m *ContentManager) Collect() int {
	now := m.opts.Now()
	freed := 0
	for key, a := range m.assets {
		if a.refs > 0 || now.Sub(a.lastUsed) < m.opts.MaxAge {
			continue
		}
		a.state = assetFreed
		a.size = geometry.Size{}
		delete(m.assets, key)
		freed++
	}
	return freed
}

// Stats reports cache occupancy.
func (m *ContentManager) Stats() (assets, allocated, masks int) {
	for _, a := range m.assets {
		if a.state == assetReady {
			allocated++
		}
	}
	return len(m.assets), allocated, len(m.masks)
}

// Close cancels outstanding loads.
func (m *ContentManager) Close() {
	m.cancel()
}
