package audio

import (
	"time"

	"github.com/lixenwraith/brickstorm/parameter"
)

// Config controls the capture cue
type Config struct {
	Enabled    bool
	SampleRate int
	Buffer     time.Duration
	Duration   time.Duration
	MinGap     time.Duration // Cues closer than this are dropped
	BaseFreq   float64
	Sweep      float64
	Volume     float64 // Peak amplitude, 0-1
}

func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: parameter.AudioSampleRate,
		Buffer:     parameter.AudioBufferDuration,
		Duration:   parameter.CaptureCueDuration,
		MinGap:     parameter.CaptureCueMinGap,
		BaseFreq:   parameter.CaptureCueBaseFreq,
		Sweep:      parameter.CaptureCueSweep,
		Volume:     parameter.CaptureCueVolume,
	}
}
