package engine

import (
	"sync"
	"time"
)

// PausableClock is a Clock that stops while paused
// Time spent paused never shows up as step Δt once resumed
type PausableClock struct {
	mu     sync.RWMutex
	source Clock

	paused      bool
	pausedAt    time.Time     // Source time when the current pause began
	pausedTotal time.Duration // Completed pauses
}

// NewPausableClock wraps source; nil uses the monotonic clock
func NewPausableClock(source Clock) *PausableClock {
	if source == nil {
		source = NewMonotonicClock()
	}
	return &PausableClock{source: source}
}

// Now returns source time minus all pause time; frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.pausedTotal)
	}
	return pc.source.Now().Add(-pc.pausedTotal)
}

func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedTotal += pc.source.Now().Sub(pc.pausedAt)
	pc.paused = false
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// PausedFor returns cumulative pause time, including a pause in progress
func (pc *PausableClock) PausedFor() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedTotal
	if pc.paused {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
