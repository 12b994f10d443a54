package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// Player starts cues; SoundManager is the speaker-backed one
type Player interface {
	Play(c Cue)
}

// AudioSystem turns routed game events into cues
type AudioSystem struct {
	player Player
	muted  *atomic.Bool
}

// NewAudioSystem creates a system playing through player
// muted may be nil; when set and true, cues are dropped
func NewAudioSystem(player Player, muted *atomic.Bool) *AudioSystem {
	return &AudioSystem{player: player, muted: muted}
}

var eventCues = map[event.EventType]Cue{
	event.EventCharacterRevealed: CueTick,
	event.EventItemRevealed:      CueAppear,
	event.EventItemPicked:        CuePick,
	event.EventItemPlaced:        CuePlace,
	event.EventItemRejected:      CueReject,
	event.EventItemEvicted:       CueReject,
	event.EventGateRetracted:     CueRetract,
	event.EventCurtainClosing:    CueCurtain,
	event.EventCurtainOpening:    CueCurtain,
	event.EventAttemptPassed:     CuePass,
	event.EventAttemptFailed:     CueFail,
	event.EventGameEnded:         CueEnd,
}

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	types := make([]event.EventType, 0, len(eventCues)+1)
	for t := event.EventItemPicked; t <= event.EventTextRevealed; t++ {
		if _, ok := eventCues[t]; ok || t == event.EventGateFired {
			types = append(types, t)
		}
	}
	return types
}

// HandleEvent plays the cue for ev
func (s *AudioSystem) HandleEvent(ev event.GameEvent) {
	if s.player == nil || (s.muted != nil && s.muted.Load()) {
		return
	}
	if ev.Type == event.EventGateFired {
		// An empty fire only clunks
		if p, ok := ev.Payload.(event.GatePayload); ok && !p.Applied {
			s.player.Play(CueRetract)
			return
		}
		s.player.Play(CueLever)
		return
	}
	if c, ok := eventCues[ev.Type]; ok {
		s.player.Play(c)
	}
}
