package screen

import (
	"sync"
	"time"
)

// DefaultTimingSamples is the timing window when Options.TimingSamples is
// not positive: one second at 60 frames per second.
const DefaultTimingSamples = 60

// FrameTimingBuffer keeps the durations of the most recent frames.
type FrameTimingBuffer struct {
	mu       sync.Mutex
	capacity int
	samples  []time.Duration // grows to capacity, then wraps at next
	next     int
}

// NewFrameTimingBuffer returns a buffer for the last capacity frames.
func NewFrameTimingBuffer(capacity int) *FrameTimingBuffer {
	if capacity <= 0 {
		capacity = DefaultTimingSamples
	}
	return &FrameTimingBuffer{capacity: capacity, samples: make([]time.Duration, 0, capacity)}
}

// Add records one frame, evicting the oldest once the buffer is full.
func (b *FrameTimingBuffer) Add(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) < b.capacity {
		b.samples = append(b.samples, d)
		return
	}
	b.samples[b.next] = d
	b.next = (b.next + 1) % b.capacity
}

// Samples returns the held durations, oldest first, or nil.
func (b *FrameTimingBuffer) Samples() []time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == 0 {
		return nil
	}
	out := make([]time.Duration, 0, len(b.samples))
	out = append(out, b.samples[b.next:]...)
	return append(out, b.samples[:b.next]...)
}

func (b *FrameTimingBuffer) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}

// Average is the mean frame time, zero when nothing was recorded.
func (b *FrameTimingBuffer) Average() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range b.samples {
		sum += d
	}
	return sum / time.Duration(len(b.samples))
}

// Worst is the longest frame in the window.
func (b *FrameTimingBuffer) Worst() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	var worst time.Duration
	for _, d := range b.samples {
		worst = max(worst, d)
	}
	return worst
}
