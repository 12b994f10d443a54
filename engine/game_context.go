package engine

import (
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/status"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Settings are the gameplay switches fixed at startup
type Settings struct {
	Policy       PlacementPolicy
	SnapDuration time.Duration
	StrictGates  bool
}

// DefaultSettings returns the stock gameplay switches
func DefaultSettings() Settings {
	return Settings{
		Policy:       PolicyEvict,
		SnapDuration: constant.SnapDuration,
	}
}

// GameContext is the application context shared by every system
// Constructed once at startup and passed explicitly
type GameContext struct {
	// ===== Immutable After Init =====

	Log      *log.Logger
	Status   *status.Registry
	Events   *event.EventQueue
	Registry *PositionRegistry
	Clock    *PausableClock
	Settings Settings

	// ===== Atomic (Self-Synchronized) =====

	FrameNumber atomic.Int64 // Tick counter; incremented by Scheduler
	IsMuted     atomic.Bool

	// ===== Game-Loop Exclusive =====

	inputEnabled bool
}

// NewGameContext creates a context over the given drop positions
// A nil logger discards output
func NewGameContext(logger *log.Logger, positions []vmath.Vec2, settings Settings, clock *PausableClock) *GameContext {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if settings.SnapDuration <= 0 {
		settings.SnapDuration = constant.SnapDuration
	}
	reg := status.NewRegistry()
	reg.Strings.Get("placement.policy").Store(settings.Policy.String())
	reg.Bools.Get("gates.strict").Store(settings.StrictGates)

	return &GameContext{
		Log:      logger,
		Status:   reg,
		Events:   event.NewEventQueue(),
		Registry: NewPositionRegistry(positions, logger, reg),
		Clock:    clock,
		Settings: settings,
	}
}

// Emit queues an event stamped with the current frame
func (ctx *GameContext) Emit(t event.EventType, payload any) {
	ctx.Events.Emit(t, payload, ctx.FrameNumber.Load())
}

// InputEnabled reports whether item drags are accepted
func (ctx *GameContext) InputEnabled() bool {
	return ctx.inputEnabled
}

// SetInputEnabled toggles item drag acceptance
func (ctx *GameContext) SetInputEnabled(enabled bool) {
	ctx.inputEnabled = enabled
	ctx.Status.Bools.Get("input.enabled").Store(enabled)
}
