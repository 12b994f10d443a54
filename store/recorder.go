package store

import (
	"context"
	"log"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// writeTimeout bounds each database write issued from the game loop
const writeTimeout = 2 * time.Second

// ProgressRecorder writes attempts and scene progress as they are routed
// Failures are logged; the story continues without persistence
type ProgressRecorder struct {
	store *Store
	log   *log.Logger
}

func NewProgressRecorder(s *Store, logger *log.Logger) *ProgressRecorder {
	return &ProgressRecorder{store: s, log: logger}
}

// EventTypes returns the event types ProgressRecorder handles
func (r *ProgressRecorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAttemptPassed,
		event.EventAttemptFailed,
		event.EventSceneAdvanced,
		event.EventGameEnded,
	}
}

// HandleEvent persists one routed event
func (r *ProgressRecorder) HandleEvent(ev event.GameEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	switch ev.Type {
	case event.EventAttemptPassed, event.EventAttemptFailed:
		p, ok := ev.Payload.(event.AttemptPayload)
		if !ok {
			return
		}
		err = r.store.RecordAttempt(ctx, Attempt{
			Scene:    p.Scene,
			Passed:   ev.Type == event.EventAttemptPassed,
			Pulls:    p.Pulls,
			Placed:   p.Placed,
			Required: p.Required,
		})
	case event.EventSceneAdvanced:
		if p, ok := ev.Payload.(event.ScenePayload); ok {
			err = r.store.SaveProgress(ctx, p.Scene)
		}
	case event.EventGameEnded:
		if err = r.store.ClearProgress(ctx); err == nil {
			err = r.store.EndSession(ctx, true)
		}
	}
	if err != nil {
		r.log.Printf("[store] %s not recorded: %v", ev.Type, err)
	}
}
