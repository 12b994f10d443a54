package audio

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/event"
)

// TestSoundManagerGracefulDegradation verifies operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	for c := Cue(0); c < cueCount; c++ {
		sm.Play(c)
	}
	sm.StartMusic()
	sm.StopMusic()
	sm.SetMuted(true)
	sm.SetVolumes(Volumes{Master: 0.5, Music: 0.5, SFX: 0.5})
	sm.Cleanup()

	if sm.Played() != 0 {
		t.Errorf("played %d cues without a speaker", sm.Played())
	}
}

// TestSoundManagerInitialization verifies the speaker can be opened and closed
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// No audio device in CI is expected; the game runs silent
	if err := sm.Initialize(); err != nil {
		t.Logf("sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("second initialization should be a no-op, got %v", err)
	}
	sm.Play(CuePass)
	if sm.Played() != 1 {
		t.Errorf("played %d, want 1", sm.Played())
	}
	sm.Cleanup()
	if sm.Initialized() {
		t.Error("still initialized after cleanup")
	}
}

func TestVolumesClamped(t *testing.T) {
	tests := []struct {
		in, want Volumes
	}{
		{Volumes{0.5, 0.2, 1}, Volumes{0.5, 0.2, 1}},
		{Volumes{-1, 2, 0}, Volumes{0, 1, 0}},
		{Volumes{math.NaN(), 0.3, 0.3}, Volumes{0, 0.3, 0.3}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamped(); got != tt.want {
			t.Errorf("Clamped(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	sm := NewSoundManager()
	sm.SetVolumes(Volumes{Master: 3, Music: 0.25, SFX: -1})
	if got := sm.Volumes(); got != (Volumes{Master: 1, Music: 0.25, SFX: 0}) {
		t.Errorf("stored volumes %+v", got)
	}
	if !sm.sfxBus.Silent || sm.master.Silent {
		t.Errorf("sfx silent=%v master silent=%v", sm.sfxBus.Silent, sm.master.Silent)
	}
	if math.Abs(sm.musicBus.Volume-(-2)) > 1e-9 {
		t.Errorf("music gain 0.25 should be 2^-2, got exponent %v", sm.musicBus.Volume)
	}

	sm.SetMuted(true)
	if !sm.master.Silent {
		t.Error("mute should silence master")
	}
	sm.SetMuted(false)
	if sm.master.Silent {
		t.Error("unmute should restore master")
	}
}

// TestCueStreamersFinite checks every cue ends and stays within [-1,1]
func TestCueStreamersFinite(t *testing.T) {
	buf := make([][2]float64, 512)
	limit := sampleRate.N(5 * time.Second)

	for c := Cue(0); c < cueCount; c++ {
		s := cueStreamer(c)
		if s == nil {
			t.Fatalf("cue %v has no streamer", c)
		}
		total := 0
		peak := 0.0
		for {
			n, ok := s.Stream(buf)
			for _, smp := range buf[:n] {
				peak = math.Max(peak, math.Abs(smp[0]))
			}
			total += n
			if !ok || total > limit {
				break
			}
		}
		if total == 0 || total > limit {
			t.Errorf("cue %v streamed %d samples", c, total)
		}
		if peak > 1 {
			t.Errorf("cue %v peaks at %.2f", c, peak)
		}
	}
	if cueStreamer(cueCount) != nil {
		t.Error("unknown cue should have no streamer")
	}
}

func TestEnvelopeShape(t *testing.T) {
	const n = 1000
	osc := &oscillator{duration: n, wave: WaveSquare, rate: sampleRate}
	s := &envelope{streamer: osc, attackSamples: 100, releaseSamples: 100, totalSamples: n}
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	if got != n {
		t.Fatalf("streamed %d, want %d", got, n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %v", buf[0][0])
	}
	if buf[n/2][0] != 1 {
		t.Errorf("sustain should be unity, got %v", buf[n/2][0])
	}
	if buf[n-1][0] > 0.02 {
		t.Errorf("release should end near zero, got %v", buf[n-1][0])
	}
}

type playLog []Cue

func (p *playLog) Play(c Cue) { *p = append(*p, c) }

func TestAudioSystemCues(t *testing.T) {
	var played playLog
	var muted atomic.Bool
	s := NewAudioSystem(&played, &muted)

	s.HandleEvent(event.GameEvent{Type: event.EventItemPlaced})
	s.HandleEvent(event.GameEvent{Type: event.EventGateFired, Payload: event.GatePayload{Item: 1, Applied: true}})
	s.HandleEvent(event.GameEvent{Type: event.EventGateFired, Payload: event.GatePayload{Item: -1}})
	s.HandleEvent(event.GameEvent{Type: event.EventAttemptPassed})
	s.HandleEvent(event.GameEvent{Type: event.EventSceneEntered})

	want := []Cue{CuePlace, CueLever, CueRetract, CuePass}
	if len(played) != len(want) {
		t.Fatalf("played %v, want %v", played, want)
	}
	for i := range want {
		if played[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, played[i], want[i])
		}
	}

	muted.Store(true)
	s.HandleEvent(event.GameEvent{Type: event.EventItemPicked})
	if len(played) != len(want) {
		t.Error("muted system still played")
	}

	types := s.EventTypes()
	for _, et := range []event.EventType{event.EventGateFired, event.EventCharacterRevealed, event.EventGameEnded} {
		found := false
		for _, got := range types {
			found = found || got == et
		}
		if !found {
			t.Errorf("%v not subscribed", et)
		}
	}
}
