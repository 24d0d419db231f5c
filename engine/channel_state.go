package engine

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/status"
)

// ChannelKeys names the metrics a ChannelState publishes
type ChannelKeys struct {
	Issued, Skipped, InFlight, StepDt, PeakDt string
}

// ChannelState gates step requests on one channel: at most one step is ever outstanding
// Used only from the coordinator goroutine; metrics are atomics for readers elsewhere
type ChannelState struct {
	name     string
	inFlight bool
	seq      uint64
	lastStep time.Time

	// Diagnostics only
	accumulated time.Duration
	diagSteps   int

	issued  *atomic.Int64
	skipped *atomic.Int64
	flag    *atomic.Bool
	stepDt  *status.AtomicFloat
	peakDt  *status.AtomicFloat
	log     *log.Logger
}

// NewChannelState starts the Δt clock at now
func NewChannelState(name string, now time.Time, reg *status.Registry, keys ChannelKeys, logger *log.Logger) *ChannelState {
	return &ChannelState{
		name:     name,
		lastStep: now,
		issued:   reg.Ints.Get(keys.Issued),
		skipped:  reg.Ints.Get(keys.Skipped),
		flag:     reg.Bools.Get(keys.InFlight),
		stepDt:   reg.Floats.Get(keys.StepDt),
		peakDt:   reg.Floats.Get(keys.PeakDt),
		log:      logger,
	}
}

// TryBegin claims the channel for a step at now
// When a step is outstanding it returns ok false and the tick is skipped, not queued
func (s *ChannelState) TryBegin(now time.Time) (dt float64, seq uint64, ok bool) {
	if s.inFlight {
		s.skipped.Add(1)
		return 0, 0, false
	}

	elapsed := now.Sub(s.lastStep)
	if elapsed < 0 {
		elapsed = 0
	}
	s.lastStep = now
	s.inFlight = true
	s.flag.Store(true)
	s.seq++
	s.issued.Add(1)

	dt = elapsed.Seconds()
	s.stepDt.Store(dt)
	if s.peakDt.StoreMax(dt) && dt > parameter.SlowStepWarn.Seconds() {
		s.log.Debug("new peak step dt", "channel", s.name, "dt", dt)
	}
	s.observe(elapsed)
	return dt, s.seq, true
}

// Complete clears the outstanding step on receipt of its update
func (s *ChannelState) Complete(seq uint64) {
	if !s.inFlight {
		s.log.Warn("update without outstanding step", "channel", s.name, "seq", seq)
		return
	}
	if seq != s.seq {
		s.log.Warn("update sequence mismatch", "channel", s.name, "seq", seq, "want", s.seq)
	}
	s.inFlight = false
	s.flag.Store(false)
}

// InFlight reports whether a step is outstanding
func (s *ChannelState) InFlight() bool {
	return s.inFlight
}

// observe accumulates step spacing and logs a summary every DiagnosticsInterval
func (s *ChannelState) observe(elapsed time.Duration) {
	s.accumulated += elapsed
	s.diagSteps++
	if s.accumulated < parameter.DiagnosticsInterval {
		return
	}
	mean := s.accumulated / time.Duration(s.diagSteps)
	s.log.Debug("step stats", "channel", s.name, "steps", s.diagSteps, "mean_dt", mean,
		"skipped", s.skipped.Load())
	s.accumulated = 0
	s.diagSteps = 0
}
