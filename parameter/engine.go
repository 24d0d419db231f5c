package parameter

import "time"

// Frame loop
const (
	// FrameUpdateInterval is the render/coordination tick (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameDeltaSeconds is the nominal per-frame Δt handed to input and the tornado
	FrameDeltaSeconds = 1.0 / 60.0
)

// World bounds
const (
	// FloorThreshold is the coordinate below which a body counts as fallen into the void
	FloorThreshold = -300.0

	// FloorAxis selects the component compared against FloorThreshold
	FloorAxis = "z"
)

// Map defaults
const (
	// DensityDynamic is the placeholder density of unanchored parts (mass = volume)
	DensityDynamic = 1.0
)

// Network feed
const (
	FeedAddress         = "127.0.0.1:7777"
	FeedPath            = "/feed"
	FeedSendQueueSize   = 64
	FeedWriteTimeout    = 2 * time.Second
	FeedReadBufferSize  = 1024
	FeedWriteBufferSize = 64 * 1024
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "brickstorm.log"
	MaxLogSize  = 10 * 1024 * 1024
)
