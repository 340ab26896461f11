package internal

import (
	"testing"
	"time"
)

func waitForPause(t *testing.T, store *TimelineStore, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for store.IsPlaying() {
		if time.Now().After(deadline) {
			t.Fatal("playback did not stop before the deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClockStopsExactlyAtDuration(t *testing.T) {
	store := NewTimelineStore()
	// 1200ms of session time is 120ms of wall time at 10x
	store.Enter("session-1", testSession(1200))

	clock := NewPlaybackClock(store)
	clock.Start()

	if !store.IsPlaying() {
		t.Fatal("IsPlaying() = false after Start()")
	}

	waitForPause(t, store, 2*time.Second)

	if got := store.CurrentTime(); got != 1200 {
		t.Errorf("CurrentTime() = %v, want exactly 1200: playback must never overshoot", got)
	}
	if store.IsPlaying() {
		t.Error("IsPlaying() = true, want false at end of session")
	}
}

func TestClockStopCancelsTicks(t *testing.T) {
	store := NewTimelineStore()
	store.Enter("session-1", testSession(600000))

	clock := NewPlaybackClock(store)
	clock.Start()
	time.Sleep(50 * time.Millisecond)
	clock.Stop()

	if store.IsPlaying() {
		t.Fatal("IsPlaying() = true after Stop()")
	}

	// A stale tick firing after Stop must not advance the cursor
	at := store.CurrentTime()
	time.Sleep(100 * time.Millisecond)
	if got := store.CurrentTime(); got != at {
		t.Errorf("CurrentTime() advanced from %v to %v after Stop()", at, got)
	}
}

func TestClockPauseStopsAdvancing(t *testing.T) {
	store := NewTimelineStore()
	store.Enter("session-1", testSession(600000))

	clock := NewPlaybackClock(store)
	clock.Start()
	time.Sleep(50 * time.Millisecond)

	// Pausing through the store is enough; the loop re-reads the flag at
	// tick time
	store.Pause()
	time.Sleep(50 * time.Millisecond)
	at := store.CurrentTime()
	time.Sleep(100 * time.Millisecond)
	if got := store.CurrentTime(); got != at {
		t.Errorf("CurrentTime() advanced from %v to %v while paused", at, got)
	}
}

func TestClockStartWithoutSession(t *testing.T) {
	store := NewTimelineStore()
	clock := NewPlaybackClock(store)
	clock.Start()

	if store.IsPlaying() {
		t.Error("IsPlaying() = true, want false: clock must not start without a session")
	}
}

func TestClockTickHandler(t *testing.T) {
	store := NewTimelineStore()
	store.Enter("session-1", testSession(1200))

	ticks := make(chan int64, 256)
	clock := NewPlaybackClock(store)
	clock.SetTickHandler(func(currentTime int64) {
		select {
		case ticks <- currentTime:
		default:
		}
	})
	clock.Start()
	waitForPause(t, store, 2*time.Second)

	var last int64
	for {
		select {
		case tick := <-ticks:
			if tick < last {
				t.Errorf("tick went backwards: %v after %v", tick, last)
			}
			last = tick
		default:
			if last != 1200 {
				t.Errorf("final tick = %v, want 1200", last)
			}
			return
		}
	}
}
