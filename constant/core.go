package constant

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the logic and render tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt fed to the scheduler after a stall (window drag, debugger)
	MaxFrameDelta = 100 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
