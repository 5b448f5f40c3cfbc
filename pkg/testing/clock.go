package testing

import (
	"sync"
	"time"
)

// FrameInterval is how far each Pump moves the tester clock.
const FrameInterval = 16 * time.Millisecond

// Epoch is the time every FakeClock starts at.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is a manually driven clock. Its Now method fits
// render.ContentManagerOptions.Now, so asset expiry follows the frames a
// test pumps.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock reading Epoch.
func NewFakeClock() *FakeClock { return &FakeClock{now: Epoch} }

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d and returns the new reading.
func (c *FakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps to t, backwards included.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
