package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the frame interval of the reference terminal driver (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta clamps a single Update step so a stalled frame cannot fast-forward the spawner
	MaxFrameDelta = 250 * time.Millisecond
)

// Command Queue
const (
	// CommandQueueSize is the fixed capacity of the command ring buffer
	CommandQueueSize = 1024

	// CommandBufferMask is the bitmask for fast modulo operations (1024 - 1)
	CommandBufferMask = 1023
)

// Spectator Feed
const (
	// SpectatorBroadcastInterval is the default snapshot push interval
	SpectatorBroadcastInterval = 100 * time.Millisecond

	// SpectatorReadLimit caps inbound websocket frames
	SpectatorReadLimit = 64 * 1024

	// SpectatorReadTimeout is the read deadline, refreshed on pong
	SpectatorReadTimeout = 60 * time.Second

	// SpectatorWriteTimeout bounds every outbound frame
	SpectatorWriteTimeout = 10 * time.Second

	// SpectatorPingInterval keeps idle connections alive
	SpectatorPingInterval = 25 * time.Second
)
