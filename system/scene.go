package system

import (
	_ "embed"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/engine/fsm"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/status"
)

//go:embed scene_fsm.yaml
var defaultSceneGraph []byte

// GameState is the coarse phase of the story
type GameState int

const (
	StateIntro GameState = iota
	StateInteraction
	StateTransition
	StateEnd
)

func (s GameState) String() string {
	switch s {
	case StateIntro:
		return "Intro"
	case StateInteraction:
		return "Interaction"
	case StateTransition:
		return "Transition"
	case StateEnd:
		return "End"
	}
	return "Unknown"
}

// SceneController drives the story through its scenes
// It owns no presentation; every visible effect goes through a collaborator
type SceneController struct {
	ctx       *engine.GameContext
	catalog   *catalog.Catalog
	roster    *component.Roster
	gates     *Gates
	trigger   *component.Trigger
	placement *Placement
	col       Collaborators

	machine *fsm.Machine[*SceneController]

	scene   int
	started bool

	revealQueue []*component.Item
	revealed    int

	statScene    *atomic.Int64
	statAttempts *atomic.Int64
	statPassed   *atomic.Int64
	statFailed   *atomic.Int64
	statPhase    *status.AtomicString
}

// NewSceneController builds the controller and loads its state graph
// graphPath overrides the embedded graph when set
func NewSceneController(
	ctx *engine.GameContext,
	cat *catalog.Catalog,
	roster *component.Roster,
	gates *Gates,
	trigger *component.Trigger,
	placement *Placement,
	col Collaborators,
	graphPath string,
) (*SceneController, error) {
	col = col.withDefaults(ctx.Log)
	if col.Paginator == nil {
		ctx.Log.Printf("[config] no paginator, page visibility is not restored")
	}

	sc := &SceneController{
		ctx:          ctx,
		catalog:      cat,
		roster:       roster,
		gates:        gates,
		trigger:      trigger,
		placement:    placement,
		col:          col,
		statScene:    ctx.Status.Ints.Get("scene.index"),
		statAttempts: ctx.Status.Ints.Get("scene.attempts"),
		statPassed:   ctx.Status.Ints.Get("scene.passed"),
		statFailed:   ctx.Status.Ints.Get("scene.failed"),
		statPhase:    ctx.Status.Strings.Get("scene.phase"),
	}

	m := fsm.NewMachine[*SceneController]()
	m.SetLogger(ctx.Log)
	sc.registerGraphFuncs(m)
	if err := fsm.LoadConfigAuto(m, graphPath, defaultSceneGraph); err != nil {
		return nil, fmt.Errorf("scene graph: %w", err)
	}
	m.OnTransition = func(from, to string) {
		sc.statPhase.Store(to)
		ctx.Log.Printf("[scene] %s -> %s (scene %d)", from, to, sc.scene)
	}
	sc.machine = m
	return sc, nil
}

// registerGraphFuncs binds the names used by the state graph
func (sc *SceneController) registerGraphFuncs(m *fsm.Machine[*SceneController]) {
	m.RegisterGuard("FaderSettled", func(s *SceneController) bool { return !s.col.Fader.InTransit() })
	m.RegisterGuard("CurtainSettled", func(s *SceneController) bool { return !s.col.Curtain.InTransit() })
	m.RegisterGuard("NarrationDone", func(s *SceneController) bool { return !s.col.Narrator.IsTyping() })
	m.RegisterGuard("SceneSettled", func(s *SceneController) bool { return s.Settled() })
	m.RegisterGuard("RevealDone", (*SceneController).revealDone)
	m.RegisterGuard("PastLastScene", func(s *SceneController) bool { return s.scene >= s.catalog.Len() })

	m.RegisterAction("EmitEvent", func(s *SceneController, args any) {
		if a, ok := args.(*fsm.EmitEventArgs); ok {
			s.ctx.Emit(a.Type, event.ScenePayload{Scene: s.scene})
		}
	})
	m.RegisterAction("DisableInteraction", func(s *SceneController, _ any) { s.setInteraction(false) })
	m.RegisterAction("EnableInteraction", func(s *SceneController, _ any) { s.setInteraction(true) })
	m.RegisterAction("FadeIn", func(s *SceneController, _ any) { s.col.Fader.FadeIn() })
	m.RegisterAction("FadeOut", func(s *SceneController, _ any) { s.col.Fader.FadeOut() })
	m.RegisterAction("CloseCurtains", func(s *SceneController, _ any) { s.col.Curtain.Close() })
	m.RegisterAction("OpenCurtains", func(s *SceneController, _ any) { s.col.Curtain.Open() })
	m.RegisterAction("NarrateScene", func(s *SceneController, _ any) { s.narrate() })
	m.RegisterAction("FullReset", func(s *SceneController, _ any) { s.FullReset() })
	m.RegisterAction("ResetGates", func(s *SceneController, _ any) { s.gates.Reset() })
	m.RegisterAction("RestorePages", func(s *SceneController, _ any) {
		if s.col.Paginator != nil {
			s.col.Paginator.Restore(s.Visible)
		}
	})
	m.RegisterAction("QueueReveal", func(s *SceneController, _ any) { s.queueReveal() })
	m.RegisterAction("RevealNext", func(s *SceneController, _ any) { s.revealNext() })
	m.RegisterAction("ApplyVisuals", func(s *SceneController, _ any) { s.applyVisuals() })
	m.RegisterAction("AdvanceScene", func(s *SceneController, _ any) { s.advance() })
	m.RegisterAction("LoadMenu", func(s *SceneController, _ any) { s.col.Loader.LoadScene(constant.MenuSceneName) })
}

// SetStartScene picks the scene the story opens on, used to resume
// Ignored once started
func (sc *SceneController) SetStartScene(i int) {
	if sc.started {
		sc.ctx.Log.Printf("[scene] start scene change after Start ignored")
		return
	}
	sc.scene = sc.catalog.Clamp(i)
	sc.statScene.Store(int64(sc.scene))
}

// Start enters Boot
func (sc *SceneController) Start() {
	if sc.started {
		sc.ctx.Log.Printf("[scene] Start called twice, ignored")
		return
	}
	sc.started = true
	sc.statScene.Store(int64(sc.scene))
	if err := sc.machine.Init(sc); err != nil {
		sc.ctx.Log.Printf("[scene] init failed: %v", err)
		return
	}
	sc.statPhase.Store(sc.machine.ActiveName())
}

// Update advances the state graph; a no-op before Start
func (sc *SceneController) Update(dt time.Duration) {
	if !sc.started {
		return
	}
	sc.machine.Update(sc, dt)
}

// State returns the coarse story phase
func (sc *SceneController) State() GameState {
	switch sc.machine.TopLevel() {
	case "Interaction":
		return StateInteraction
	case "Transition", "Fake":
		return StateTransition
	case "End":
		return StateEnd
	}
	return StateIntro
}

// Phase returns the active leaf name, empty before Start
func (sc *SceneController) Phase() string {
	if !sc.started {
		return ""
	}
	return sc.machine.ActiveName()
}

// SceneIndex returns the current scene index
func (sc *SceneController) SceneIndex() int {
	return sc.scene
}

// Pulls returns the lever fires of the current attempt
func (sc *SceneController) Pulls() int {
	return sc.gates.Pulls()
}

// lookup is the catalog index for the current scene
// Past the last scene the story keeps showing the final one
func (sc *SceneController) lookup() int {
	if n := sc.catalog.Len(); sc.scene >= n && n > 0 {
		return n - 1
	}
	return sc.scene
}

// Text returns the current scene's narration
func (sc *SceneController) Text() string {
	return sc.catalog.Text(sc.lookup())
}

// Visible reports whether name is available in the current scene
func (sc *SceneController) Visible(name string) bool {
	return sc.catalog.IsAvailable(sc.lookup(), name)
}

// VisualParams resolves an item's activation visuals in the current scene
func (sc *SceneController) VisualParams(name string) catalog.VisualParams {
	return sc.catalog.VisualParams(sc.lookup(), name)
}

// Settled reports whether no item or figure is animating
func (sc *SceneController) Settled() bool {
	return !sc.roster.AnyInTransit()
}

// Confirm submits the placed set; only accepted while Ready
func (sc *SceneController) Confirm() {
	if !sc.started || !sc.machine.IsIn("Interaction.Ready") {
		sc.ctx.Log.Printf("[scene] confirm outside Ready (%s) ignored", sc.Phase())
		return
	}
	placed := sc.gates.Placed()
	payload := event.AttemptPayload{
		Scene:    sc.scene,
		Placed:   placed,
		Required: sc.catalog.RequiredItems(sc.lookup()),
		Pulls:    sc.gates.Pulls(),
	}
	sc.statAttempts.Add(1)
	if sc.CheckCorrect() {
		sc.statPassed.Add(1)
		sc.ctx.Emit(event.EventAttemptPassed, payload)
		return
	}
	sc.statFailed.Add(1)
	sc.ctx.Emit(event.EventAttemptFailed, payload)
}

// CheckCorrect reports whether the gate slots hold exactly the required set
func (sc *SceneController) CheckCorrect() bool {
	placed := sc.gates.Placed()
	scene := sc.lookup()
	required := sc.catalog.RequiredItems(scene)
	if len(placed) != len(required) {
		return false
	}
	seen := make(map[string]struct{}, len(placed))
	for _, name := range placed {
		if !sc.catalog.IsRequired(scene, name) {
			return false
		}
		if _, dup := seen[name]; dup {
			return false
		}
		seen[name] = struct{}{}
	}
	if !sc.ctx.Settings.StrictGates {
		return true
	}
	for _, g := range sc.gates.All() {
		id, ok := sc.ctx.Registry.OccupantAt(g.Slot)
		if !ok {
			continue
		}
		if it := sc.roster.ByID(id); it != nil && sc.catalog.IsRequired(scene, it.Name) && !g.Activated {
			return false
		}
	}
	return true
}

// FullReset sends every item home unlocked and returns the levers to neutral
// Completion is observed through Settled
func (sc *SceneController) FullReset() {
	sc.placement.Cancel()
	sc.gates.ResetWithItems()
	for _, it := range sc.roster.All() {
		if !it.Active() {
			continue
		}
		it.CancelDrag()
		sc.ctx.Registry.ReleaseItem(it.ID)
		it.Unlock()
		it.ResetAssociated()
		it.ReturnToRest()
	}
	sc.gates.ResetPulls()
}

func (sc *SceneController) setInteraction(enabled bool) {
	if !enabled {
		sc.placement.Cancel()
	}
	sc.ctx.SetInputEnabled(enabled)
	sc.gates.SetEnabled(enabled)
	if sc.trigger != nil {
		sc.trigger.SetEnabled(enabled)
	}
}

func (sc *SceneController) narrate() {
	sc.col.Narrator.SkipToEnd()
	sc.col.Narrator.Reveal(sc.Text())
}

func (sc *SceneController) currentPage() (int, bool) {
	if sc.col.Paginator == nil {
		return 0, false
	}
	return sc.col.Paginator.Current(), true
}

// queueReveal collects the current page's newly available items in roster order
func (sc *SceneController) queueReveal() {
	page, paged := sc.currentPage()
	sc.revealQueue = sc.revealQueue[:0]
	sc.revealed = 0
	for _, it := range sc.roster.All() {
		if it.Active() || !sc.Visible(it.Name) {
			continue
		}
		if paged && it.Page != page {
			continue
		}
		sc.revealQueue = append(sc.revealQueue, it)
	}
	sc.revealNext()
}

// revealNext shows item k once k staggers have elapsed in Reveal
func (sc *SceneController) revealNext() {
	elapsed := sc.machine.TimeInState()
	for sc.revealed < len(sc.revealQueue) && elapsed >= time.Duration(sc.revealed)*constant.RevealStagger {
		it := sc.revealQueue[sc.revealed]
		sc.revealed++
		it.Activate()
		sc.ctx.Emit(event.EventItemRevealed, it.Payload(it.Rest))
	}
}

// revealDone holds Ready back one stagger after the last reveal
func (sc *SceneController) revealDone() bool {
	if sc.revealed < len(sc.revealQueue) {
		return false
	}
	return sc.machine.TimeInState() >= time.Duration(len(sc.revealQueue))*constant.RevealStagger
}

// applyVisuals refreshes the order and facing of figures raised in this scene
func (sc *SceneController) applyVisuals() {
	for _, g := range sc.gates.All() {
		id, ok := g.Held()
		if !ok || !g.Activated {
			continue
		}
		it := sc.roster.ByID(id)
		if it == nil || it.Secondary == nil {
			continue
		}
		vp := sc.VisualParams(it.Name)
		it.Secondary.ApplyVisuals(vp.Order, vp.Mirrored)
	}
}

func (sc *SceneController) advance() {
	sc.scene++
	sc.statScene.Store(int64(sc.scene))
	sc.ctx.Emit(event.EventSceneAdvanced, event.ScenePayload{Scene: sc.scene})
}

// EventTypes returns the events that drive the state graph
func (sc *SceneController) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventConfirmPulled,
		event.EventAttemptPassed,
		event.EventAttemptFailed,
	}
}

// HandleEvent submits on a rope pull and feeds attempt results to the graph
func (sc *SceneController) HandleEvent(ev event.GameEvent) {
	if !sc.started {
		return
	}
	switch ev.Type {
	case event.EventConfirmPulled:
		sc.Confirm()
	default:
		sc.machine.HandleEvent(sc, ev.Type)
	}
}
