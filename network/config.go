package network

import (
	"time"

	"github.com/lixenwraith/brickstorm/parameter"
)

// Config holds feed configuration
type Config struct {
	Enabled bool

	// Address to bind; the feed is served under Path
	Address string
	Path    string

	MaxClients int

	// Timing
	WriteTimeout time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int // Frames buffered per client before it is dropped
}

// DefaultConfig returns a disabled feed bound to loopback
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		Address:         parameter.FeedAddress,
		Path:            parameter.FeedPath,
		MaxClients:      16,
		WriteTimeout:    parameter.FeedWriteTimeout,
		ReadBufferSize:  parameter.FeedReadBufferSize,
		WriteBufferSize: parameter.FeedWriteBufferSize,
		SendQueueSize:   parameter.FeedSendQueueSize,
	}
}
