package internal

import (
	"context"
	"sync"
	"time"
)

// replaySpeed is the fixed compression factor: recorded sessions play back
// ten times faster than they were recorded.
const replaySpeed = 10

// tickInterval approximates a per-frame callback cadence
const tickInterval = 16 * time.Millisecond

// PlaybackClock advances the store's cursor at replaySpeed while playback is
// running. It is the only component that reads the wall clock, which keeps the
// projectors purely functions of the cursor. The loop re-reads the store's
// playing flag at every tick, so a tick that fires after Pause or Stop is a
// no-op rather than advancing a logically stopped session.
type PlaybackClock struct {
	store *TimelineStore

	mu     sync.Mutex
	cancel context.CancelFunc
	onTick func(currentTime int64)
}

// NewPlaybackClock creates a clock bound to a store
func NewPlaybackClock(store *TimelineStore) *PlaybackClock {
	return &PlaybackClock{store: store}
}

// SetTickHandler registers a callback invoked after each cursor advance.
// Must be set before Start.
func (c *PlaybackClock) SetTickHandler(fn func(currentTime int64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

// Start begins playback. No-op if no session is loaded or the clock is
// already running.
func (c *PlaybackClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.store.Active() || c.cancel != nil {
		return
	}
	c.store.Play()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.run(ctx)
}

// Stop pauses playback and cancels the pending tick
func (c *PlaybackClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Pause()
	c.stopLocked()
}

func (c *PlaybackClock) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *PlaybackClock) run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Live state, not state captured at schedule time
			if !c.store.IsPlaying() || !c.store.Active() {
				c.mu.Lock()
				c.stopLocked()
				c.mu.Unlock()
				return
			}

			delta := now.Sub(last).Milliseconds()
			last = now

			next := c.store.CurrentTime() + delta*replaySpeed
			duration := c.store.Duration()
			if next >= duration {
				// Never overshoot: land exactly on the end and stop
				c.store.SetCurrentTime(duration)
				c.store.Pause()
				c.notify(duration)
				c.mu.Lock()
				c.stopLocked()
				c.mu.Unlock()
				return
			}
			c.store.SetCurrentTime(next)
			c.notify(next)
		}
	}
}

func (c *PlaybackClock) notify(currentTime int64) {
	c.mu.Lock()
	fn := c.onTick
	c.mu.Unlock()
	if fn != nil {
		fn(currentTime)
	}
}
