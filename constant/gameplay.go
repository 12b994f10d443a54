package constant

import "time"

// Drop Positions & Registry
const (
	// PositionEpsilon is the tolerance for matching a point to a canonical drop position
	PositionEpsilon = 0.01

	// GridResolution is the quantization step used for registry keys
	GridResolution = 0.01

	// SnapThreshold is the maximum distance from a release point to a drop position
	SnapThreshold = 0.5
)

// Items
const (
	// SnapDuration is the length of the linear relocation animation
	SnapDuration = 500 * time.Millisecond

	// ItemHitRadius is the pick-up radius around an item's position
	ItemHitRadius = 0.45

	// DragScale is the visual scale applied while an item is held
	DragScale = 1.1

	// SecondaryMoveDuration is the length of a secondary figure's activation move
	SecondaryMoveDuration = 500 * time.Millisecond

	// ArrivalEpsilon is the distance under which a snap completes immediately
	ArrivalEpsilon = 0.001
)

// Gates (levers)
const (
	// GatePullRange is the pointer travel in scene units for a full pull
	GatePullRange = 2.0

	// GateTriggerPull is the normalized pull at which a gate fires
	GateTriggerPull = 0.9

	// GateMaxAngle is the lever angle in degrees at full pull
	GateMaxAngle = 180.0

	// GateReturnDuration is the ease-out return time to neutral
	GateReturnDuration = time.Second

	// GateHitRadius is the grab radius around a gate pivot
	GateHitRadius = 0.6
)

// Confirm trigger (rope)
const (
	// RopeMinOffset is the lowest rope offset relative to its anchor
	RopeMinOffset = -2.0

	// RopeTriggerOffset is the offset at which the rope fires
	RopeTriggerOffset = -1.8

	// RopeReturnSpeed is the exponential return rate per second
	RopeReturnSpeed = 2.0

	// RopeSettleEpsilon is the offset magnitude treated as fully returned
	RopeSettleEpsilon = 0.001

	// RopeHitRadius is the grab radius around the rope handle
	RopeHitRadius = 0.6
)

// Scene flow
const (
	// RevealStagger is the delay between newly available item reveals
	RevealStagger = 500 * time.Millisecond

	// CurtainHold is the wait after closing curtains before the reset runs
	CurtainHold = 2 * time.Second

	// NarrationDelay is the pause between opening curtains and the next narration
	NarrationDelay = 4 * time.Second

	// EndHold is the time the terminal image stays up before returning to the menu
	EndHold = 3 * time.Second

	// MenuSceneName is the scene requested from the loader when the story ends
	MenuSceneName = "MainMenu"
)
