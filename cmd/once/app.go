package main

import (
	"context"
	"log"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/audio"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/narrative"
	"github.com/lixenwraith/once-upon-a-lever/render"
	"github.com/lixenwraith/once-upon-a-lever/replay"
	"github.com/lixenwraith/once-upon-a-lever/store"
	"github.com/lixenwraith/once-upon-a-lever/system"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Keys understood by the game loop; the same names appear in replay files
const (
	keyNext    = "n"
	keyPrev    = "p"
	keySkip    = "space"
	keyConfirm = "enter"
	keyMute    = "m"
	keyPause   = "P"
)

// menuLoader ends the story loop when the controller asks for another scene
type menuLoader struct {
	requested string
}

func (m *menuLoader) LoadScene(name string) {
	log.Printf("[main] scene %q requested, leaving story", name)
	m.requested = name
}

// app owns the wired game and everything the terminal loop drives
// All methods run on the loop goroutine
type app struct {
	ctx      *engine.GameContext
	game     *system.Game
	writer   *narrative.Typewriter
	curtains *narrative.CurtainPair
	fader    *narrative.Fader
	menu     *menuLoader
	dt       time.Duration

	sound    *audio.SoundManager // nil without an audio device
	store    *store.Store        // nil without persistence
	settings store.Settings

	rec    *replay.Recorder // nil unless recording
	player *replay.Player   // nil unless replaying
}

// finished reports whether the story handed control to the menu
func (a *app) finished() bool {
	return a.menu.requested != ""
}

// replaying reports whether live gameplay input is ignored
func (a *app) replaying() bool {
	return a.player != nil && !a.player.Done()
}

// pointer applies a live drag gesture
func (a *app) pointer(g render.Gesture, at vmath.Vec2) {
	if g == render.GestureNone || a.replaying() {
		return
	}
	a.record(replay.Record{Kind: gestureKinds[g], X: at.X, Y: at.Y})
	render.Apply(a.game.Input, g, at)
}

// key applies a live key; gameplay keys are recorded and refused while replaying
func (a *app) key(name string) {
	switch name {
	case "":
		return
	case keyMute:
		a.toggleMute()
		return
	case keyPause:
		paused := a.ctx.Clock.Toggle()
		log.Printf("[main] paused=%v", paused)
		return
	}
	if a.replaying() {
		return
	}
	a.record(replay.Record{Kind: replay.KindKey, Key: name})
	a.gameKey(name)
}

func (a *app) gameKey(name string) {
	switch name {
	case keyNext:
		if a.ctx.InputEnabled() {
			a.game.Pages.Next(a.game.Scene.Visible)
		}
	case keyPrev:
		if a.ctx.InputEnabled() {
			a.game.Pages.Prev(a.game.Scene.Visible)
		}
	case keySkip:
		a.writer.SkipToEnd()
	case keyConfirm:
		a.ctx.Emit(event.EventConfirmPulled, nil)
	default:
		// Digits pull the matching lever, 1 for the first gate
		if len(name) == 1 && name[0] >= '1' && name[0] <= '9' {
			a.fireGate(int(name[0] - '1'))
		}
	}
}

func (a *app) fireGate(i int) {
	gates := a.game.Gates.All()
	if !a.ctx.InputEnabled() || i >= len(gates) || !gates[i].Enabled() {
		return
	}
	gates[i].Fire()
}

func (a *app) record(r replay.Record) {
	if a.rec == nil {
		return
	}
	r.Frame = a.ctx.FrameNumber.Load()
	if err := a.rec.Write(r); err != nil {
		log.Printf("[replay] record stopped: %v", err)
		a.rec = nil
	}
}

// tick feeds due replay input, then advances one fixed step unless paused
func (a *app) tick() {
	if a.ctx.Clock.IsPaused() {
		return
	}
	if a.player != nil {
		for _, r := range a.player.Due(a.ctx.FrameNumber.Load()) {
			switch r.Kind {
			case replay.KindKey:
				a.gameKey(r.Key)
			default:
				render.Apply(a.game.Input, replayGestures[r.Kind], vmath.V2(r.X, r.Y))
			}
		}
	}
	a.game.Scheduler.Tick(a.dt)
}

func (a *app) toggleMute() {
	muted := !a.ctx.IsMuted.Load()
	a.ctx.IsMuted.Store(muted)
	if a.sound != nil {
		a.sound.SetMuted(muted)
	}
	a.settings.Muted = muted
	a.saveSettings()
}

func (a *app) saveSettings() {
	if a.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.store.SaveSettings(ctx, a.settings); err != nil {
		log.Printf("[store] settings not saved: %v", err)
	}
}

// close flushes the recording, ends an unfinished session and closes the store
func (a *app) close() {
	for _, line := range a.ctx.Status.Lines() {
		log.Printf("[status] %s", line)
	}
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			log.Printf("[replay] close: %v", err)
		}
		a.rec = nil
	}
	if a.store != nil && a.store.Session() != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.store.EndSession(ctx, false); err != nil {
			log.Printf("[store] end session: %v", err)
		}
	}
	a.closeStore()
}

func (a *app) closeStore() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		log.Printf("[store] close: %v", err)
	}
	a.store = nil
}

var gestureKinds = map[render.Gesture]replay.Kind{
	render.GestureDown: replay.KindDown,
	render.GestureMove: replay.KindMove,
	render.GestureUp:   replay.KindUp,
}

var replayGestures = map[replay.Kind]render.Gesture{
	replay.KindDown: render.GestureDown,
	replay.KindMove: render.GestureMove,
	replay.KindUp:   render.GestureUp,
}
