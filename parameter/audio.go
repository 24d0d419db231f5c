package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
)

// Capture cue
const (
	// CaptureCueDuration is the length of one whoosh
	CaptureCueDuration = 350 * time.Millisecond

	// CaptureCueMinGap rate-limits overlapping whooshes when many bodies are captured at once
	CaptureCueMinGap = 150 * time.Millisecond

	CaptureCueBaseFreq = 90.0
	CaptureCueSweep    = 160.0
	CaptureCueVolume   = 0.25
)
