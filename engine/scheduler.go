package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/event"
)

// Updater is advanced once per tick with the elapsed game time
type Updater interface {
	Update(dt time.Duration)
}

// UpdaterFunc adapts a function to Updater
type UpdaterFunc func(dt time.Duration)

func (f UpdaterFunc) Update(dt time.Duration) { f(dt) }

// Scheduler advances all updaters in registration order, then dispatches queued events
// Runs on the game loop goroutine only
type Scheduler struct {
	ctx      *GameContext
	router   *event.Router
	updaters []Updater

	lastTick time.Time

	statTicks      *atomic.Int64
	statDispatched *atomic.Int64
	statDropped    *atomic.Int64
}

// NewScheduler creates a scheduler bound to the context's event queue
func NewScheduler(ctx *GameContext) *Scheduler {
	return &Scheduler{
		ctx:            ctx,
		router:         event.NewRouter(ctx.Events),
		lastTick:       ctx.Clock.Now(),
		statTicks:      ctx.Status.Ints.Get("engine.ticks"),
		statDispatched: ctx.Status.Ints.Get("engine.events"),
		statDropped:    ctx.Status.Ints.Get("engine.events_dropped"),
	}
}

// Add appends an updater
func (s *Scheduler) Add(u Updater) {
	s.updaters = append(s.updaters, u)
}

// RegisterEventHandler adds an event handler to the router
func (s *Scheduler) RegisterEventHandler(h event.Handler) {
	s.router.Register(h)
}

// Router exposes the event router for inspection
func (s *Scheduler) Router() *event.Router {
	return s.router
}

// Step ticks with the game time elapsed since the previous Step
// A paused clock yields dt=0 so animations hold
func (s *Scheduler) Step() {
	now := s.ctx.Clock.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now
	s.Tick(dt)
}

// Tick advances one frame by dt, clamped to constant.MaxFrameDelta
func (s *Scheduler) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > constant.MaxFrameDelta {
		dt = constant.MaxFrameDelta
	}

	s.ctx.FrameNumber.Add(1)
	s.statTicks.Add(1)

	for _, u := range s.updaters {
		u.Update(dt)
	}

	n := s.router.DispatchAll()
	s.statDispatched.Add(int64(n))
	s.statDropped.Store(int64(s.ctx.Events.Dropped()))
}
