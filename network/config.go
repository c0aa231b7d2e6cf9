package network

import (
	"time"

	"github.com/lixenwraith/planetfall/parameter"
)

// Config holds spectator feed configuration
type Config struct {
	// Address to bind; empty disables the feed
	Address string

	// AcceptCommands routes client text frames into the engine
	AcceptCommands bool

	// Connection limits
	MaxPeers int

	// Timing
	BroadcastInterval time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	ShutdownTimeout   time.Duration

	// Buffer sizes
	ReadLimit     int64
	SendQueueSize int
}

// DefaultConfig returns the feed defaults, disabled until Address is set
func DefaultConfig() *Config {
	return &Config{
		AcceptCommands:    true,
		MaxPeers:          16,
		BroadcastInterval: parameter.SpectatorBroadcastInterval,
		ReadTimeout:       parameter.SpectatorReadTimeout,
		WriteTimeout:      parameter.SpectatorWriteTimeout,
		PingInterval:      parameter.SpectatorPingInterval,
		ShutdownTimeout:   5 * time.Second,
		ReadLimit:         parameter.SpectatorReadLimit,
		SendQueueSize:     32,
	}
}
