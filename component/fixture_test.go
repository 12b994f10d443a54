package component

import (
	"testing"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

const testFrame = 16 * time.Millisecond

var (
	slotA = vmath.V2(0, 0)
	slotB = vmath.V2(3, 0)
	restA = vmath.V2(-5, -5)
	restB = vmath.V2(-3, -5)
)

type fixedVisuals map[string]catalog.VisualParams

func (f fixedVisuals) VisualParams(name string) catalog.VisualParams {
	if v, ok := f[name]; ok {
		return v
	}
	return catalog.DefaultVisualParams()
}

type fixture struct {
	ctx    *engine.GameContext
	roster *Roster
	a, b   *Item
}

func newFixture(t *testing.T, policy engine.PlacementPolicy) *fixture {
	t.Helper()
	settings := engine.DefaultSettings()
	settings.Policy = policy
	ctx := engine.NewGameContext(nil, []vmath.Vec2{slotA, slotB, restA, restB}, settings, nil)
	ctx.SetInputEnabled(true)

	roster := NewRoster()
	a := NewItem(ctx, 1, "crown", 0, restA)
	a.Secondary = NewSecondary(vmath.V2(-13, 4))
	b := NewItem(ctx, 2, "castle", 0, restB)
	roster.Add(a)
	roster.Add(b)
	a.Activate()
	b.Activate()
	return &fixture{ctx: ctx, roster: roster, a: a, b: b}
}

// settle steps every item until nothing is in transit
func (f *fixture) settle(t *testing.T) int {
	t.Helper()
	for frames := 0; frames < 500; frames++ {
		if !f.roster.AnyInTransit() {
			return frames
		}
		for _, it := range f.roster.All() {
			it.Update(testFrame)
		}
	}
	t.Fatal("items never settled")
	return 0
}

// drag performs a full pick-move-release gesture
func (f *fixture) drag(t *testing.T, it *Item, to vmath.Vec2) bool {
	t.Helper()
	if !it.PointerDown(it.Pos) {
		return false
	}
	it.PointerMove(vmath.V2Lerp(it.Pos, to, 0.5))
	it.PointerUp(to)
	return true
}

func (f *fixture) eventTypes() []event.EventType {
	var out []event.EventType
	for _, ev := range f.ctx.Events.Consume() {
		out = append(out, ev.Type)
	}
	return out
}

func hasEvent(types []event.EventType, want event.EventType) bool {
	for _, et := range types {
		if et == want {
			return true
		}
	}
	return false
}
