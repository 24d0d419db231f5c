package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/vmath"
)

// CaptureCue plays a short whoosh each time the tornado grabs a body
// A cue that failed to open the speaker stays silent; the sandbox runs without sound
type CaptureCue struct {
	cfg    Config
	format beep.Format
	sample floatBuffer

	play func(beep.Streamer)
	now  func() time.Time

	mu       sync.Mutex
	lastPlay time.Time

	opened  bool
	silent  atomic.Bool
	played  atomic.Int64
	dropped atomic.Int64
}

// NewCaptureCue opens the speaker and renders the cue sample
// On failure the returned cue is silent and the error is for logging only
func NewCaptureCue(cfg Config) (*CaptureCue, error) {
	c := newCaptureCue(cfg, func(s beep.Streamer) { speaker.Play(s) }, time.Now)
	if !cfg.Enabled {
		c.silent.Store(true)
		return c, nil
	}

	rate := c.format.SampleRate
	if err := speaker.Init(rate, rate.N(cfg.Buffer)); err != nil {
		c.silent.Store(true)
		return c, errors.Wrap(err, "speaker init")
	}
	c.opened = true
	return c, nil
}

func newCaptureCue(cfg Config, play func(beep.Streamer), now func() time.Time) *CaptureCue {
	return &CaptureCue{
		cfg:    cfg,
		format: beep.Format{SampleRate: beep.SampleRate(cfg.SampleRate), NumChannels: 2, Precision: 2},
		sample: generateWhoosh(cfg.SampleRate, cfg, vmath.NewFastRand(uint64(cfg.SampleRate))),
		play:   play,
		now:    now,
	}
}

// Play starts one cue unless silent or the previous cue started less than MinGap ago
// Reports whether a cue was started
func (c *CaptureCue) Play() bool {
	if c.silent.Load() || len(c.sample) == 0 {
		return false
	}

	now := c.now()
	c.mu.Lock()
	if !c.lastPlay.IsZero() && now.Sub(c.lastPlay) < c.cfg.MinGap {
		c.mu.Unlock()
		c.dropped.Add(1)
		return false
	}
	c.lastPlay = now
	c.mu.Unlock()

	c.play(c.streamer())
	c.played.Add(1)
	return true
}

// streamer replays the rendered sample on both channels
func (c *CaptureCue) streamer() beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(c.sample) {
			return 0, false
		}
		n := copyStereo(samples, c.sample[pos:])
		pos += n
		return n, true
	})
}

func copyStereo(dst [][2]float64, src floatBuffer) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}

// Silent reports whether cues are suppressed
func (c *CaptureCue) Silent() bool { return c.silent.Load() }

// SetSilent mutes or unmutes the cue; unmuting a cue whose speaker failed has no effect on output
func (c *CaptureCue) SetSilent(v bool) { c.silent.Store(v) }

// Stats returns how many cues were started and how many were rate limited
func (c *CaptureCue) Stats() (played, dropped int64) {
	return c.played.Load(), c.dropped.Load()
}

// Close releases the speaker if it was opened
func (c *CaptureCue) Close() {
	if !c.opened {
		return
	}
	c.opened = false
	speaker.Close()
}
