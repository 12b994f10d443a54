package system

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/narrative"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

const testFrame = 16 * time.Millisecond

const testScenes = `
version: 1
scenes:
  - text: "Once."
    available: [castle, king, crown, tree]
    required: [castle, king]
    visuals:
      king: {offset: [4, 0], order: 2, mirrored: true}
  - text: "Next."
    extends: 0
    add: [moon]
    required: [moon]
`

const testLayout = `
pages: [one, two]
gates:
  - {slot: [0, 0], pivot: [0, -1.5]}
  - {slot: [3, 0], pivot: [3, -1.5]}
  - {slot: [6, 0], pivot: [6, -1.5]}
items:
  - {name: castle, page: 0, rest: [-6, -4], figure: [-10, 2]}
  - {name: king, page: 0, rest: [-4, -4], figure: [-10, 3]}
  - {name: crown, page: 0, rest: [-2, -4]}
  - {name: tree, page: 1, rest: [-6, -6]}
  - {name: moon, page: 1, rest: [-4, -6]}
trigger:
  anchor: [10, 4]
arrows:
  prev: [8, -4]
  next: [10, -4]
`

// recorder captures every routed event type in order
type recorder struct {
	events []event.GameEvent
}

func (r *recorder) EventTypes() []event.EventType {
	var types []event.EventType
	for t := event.EventItemPicked; t <= event.EventTextRevealed; t++ {
		types = append(types, t)
	}
	return types
}

func (r *recorder) HandleEvent(ev event.GameEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// index returns the position of the first event of type t, -1 when absent
func (r *recorder) index(t event.EventType) int {
	for i, ev := range r.events {
		if ev.Type == t {
			return i
		}
	}
	return -1
}

type menuLoader struct {
	loaded []string
}

func (l *menuLoader) LoadScene(name string) {
	l.loaded = append(l.loaded, name)
}

type fixture struct {
	*Game
	rec     *recorder
	logs    *bytes.Buffer
	writer  *narrative.Typewriter
	curtain *narrative.CurtainPair
	loader  *menuLoader
}

func newFixture(t *testing.T, scenes string, settings engine.Settings) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := log.New(logs, "", 0)

	cat, err := catalog.Load([]byte(scenes), logger)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	layout, err := catalog.LoadLayout([]byte(testLayout), logger)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	ctx := engine.NewGameContext(logger, layout.Positions(), settings, nil)
	f := &fixture{
		rec:     &recorder{},
		logs:    logs,
		writer:  narrative.NewTypewriter(ctx),
		curtain: narrative.NewCurtainPair(ctx),
		loader:  &menuLoader{},
	}
	g, err := Build(ctx, cat, layout, Collaborators{
		Narrator: f.writer,
		Curtain:  f.curtain,
		Fader:    narrative.NewFader(),
		Loader:   f.loader,
	}, Options{Handlers: []event.Handler{f.rec}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	f.Game = g
	return f
}

// runUntil ticks until the controller's leaf is phase
func (f *fixture) runUntil(t *testing.T, phase string, maxFrames int) int {
	t.Helper()
	for frames := 0; frames < maxFrames; frames++ {
		if f.Scene.Phase() == phase {
			return frames
		}
		f.Scheduler.Tick(testFrame)
	}
	t.Fatalf("phase %q not reached in %d frames, stuck in %q", phase, maxFrames, f.Scene.Phase())
	return 0
}

func (f *fixture) step(frames int) {
	for i := 0; i < frames; i++ {
		f.Scheduler.Tick(testFrame)
	}
}

// ready starts the story and waits for the first interaction window
func (f *fixture) ready(t *testing.T) {
	t.Helper()
	f.Scene.Start()
	f.runUntil(t, "Interaction.Ready", 2000)
}

func (f *fixture) item(t *testing.T, name string) *component.Item {
	t.Helper()
	it := f.Roster.ByName(name)
	if it == nil {
		t.Fatalf("no item %q", name)
	}
	return it
}

// drop drags an item onto p and lets it land
func (f *fixture) drop(t *testing.T, name string, p vmath.Vec2) {
	t.Helper()
	it := f.item(t, name)
	f.Input.PointerDown(it.Pos)
	if f.Placement.Held() != it {
		t.Fatalf("%s not picked up", name)
	}
	f.Input.PointerMove(vmath.V2Lerp(it.Pos, p, 0.5))
	f.Input.PointerUp(p)
	f.step(40)
}

// pull drags a grab point straight down by dy
func (f *fixture) pull(at vmath.Vec2, dy float64) {
	f.Input.PointerDown(at)
	f.Input.PointerMove(vmath.V2(at.X, at.Y-dy))
	f.Input.PointerUp(vmath.V2(at.X, at.Y-dy))
}

func (f *fixture) pullRope() {
	f.pull(f.Trigger.Handle(), 2)
	f.step(1)
}

func (f *fixture) slot(i int) vmath.Vec2 {
	return f.Gates.All()[i].Slot
}
