package component

import (
	"testing"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

var pivotA = vmath.V2(1.2, -0.5)

func newTestGate(f *fixture) *Gate {
	visuals := fixedVisuals{"crown": {Offset: vmath.V2(5, 0), Order: 1, Mirrored: true}}
	g := NewGate(f.ctx, f.roster, visuals, 0, slotA, pivotA)
	g.SetEnabled(true)
	return g
}

func (f *fixture) place(t *testing.T, it *Item, slot vmath.Vec2) {
	t.Helper()
	f.drag(t, it, slot)
	f.settle(t)
	if it.Pos != slot {
		t.Fatalf("Setup: %s not placed at %s", it.Name, slot)
	}
}

func TestGateDoubleFireRoundTrip(t *testing.T) {
	f := newFixture(t, 0)
	g := newTestGate(f)
	f.place(t, f.a, slotA)
	fig := f.a.Secondary

	g.Fire()
	if !g.Activated || !f.a.Locked() {
		t.Fatal("Expected first fire to activate and lock")
	}
	if fig.Order != 1 || !fig.Mirrored {
		t.Errorf("Expected scene visuals applied, got order=%d mirrored=%v", fig.Order, fig.Mirrored)
	}
	f.settle(t)
	if want := vmath.V2Add(fig.Rest, vmath.V2(5, 0)); !vmath.V2Near(fig.Pos, want, 1e-9) {
		t.Errorf("Expected figure moved by offset to %s, got %s", want, fig.Pos)
	}

	g.Fire()
	if g.Activated || f.a.Locked() {
		t.Fatal("Expected second fire to retract and unlock")
	}
	f.settle(t)
	if fig.Pos != fig.Rest || fig.Order != 5 || fig.Mirrored {
		t.Errorf("Expected figure restored, got pos=%s order=%d mirrored=%v", fig.Pos, fig.Order, fig.Mirrored)
	}

	types := f.eventTypes()
	if !hasEvent(types, event.EventGateFired) || !hasEvent(types, event.EventGateRetracted) {
		t.Errorf("Expected fired and retracted events, got %v", types)
	}
}

func TestGateFireEmptySlotIsCountedNoop(t *testing.T) {
	f := newFixture(t, 0)
	g := newTestGate(f)
	pulls := 0
	g.OnPull = func() int { pulls++; return pulls }

	g.Fire()
	if g.Activated {
		t.Error("Empty fire must not activate")
	}
	if pulls != 1 {
		t.Errorf("Expected pull counted, got %d", pulls)
	}
	if got := f.ctx.Status.Ints.Get("gates.empty").Load(); got != 1 {
		t.Errorf("Expected empty fire metric 1, got %d", got)
	}
	evs := f.ctx.Events.Consume()
	if len(evs) != 1 || evs[0].Payload.(event.GatePayload).Applied {
		t.Errorf("Expected one unapplied GateFired, got %+v", evs)
	}
}

func TestGateGestureFiresOncePerPull(t *testing.T) {
	f := newFixture(t, 0)
	g := newTestGate(f)
	f.place(t, f.a, slotA)

	if !g.PointerDown(pivotA) {
		t.Fatal("Expected enabled gate to accept the gesture")
	}
	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-1))
	if g.Angle != -90 || g.Activated {
		t.Errorf("Half pull: angle=%v activated=%v", g.Angle, g.Activated)
	}

	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-1.9))
	if !g.Activated {
		t.Fatal("Expected fire past the trigger pull")
	}
	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-1))
	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-2))
	if !g.Activated {
		t.Error("Latch must prevent a second fire within one gesture")
	}

	g.PointerUp(pivotA)
	if g.Gesture() != GestureReturning {
		t.Fatalf("Expected Returning, got %s", g.Gesture())
	}
	g.Update(500 * time.Millisecond)
	if g.Angle >= 0 || g.Angle < -180 {
		t.Errorf("Expected partial return, got %v", g.Angle)
	}
	g.Update(600 * time.Millisecond)
	if g.Gesture() != GestureIdle || g.Angle != 0 {
		t.Errorf("Expected neutral idle lever, got %s angle=%v", g.Gesture(), g.Angle)
	}

	// Latch cleared: the next pull retracts
	g.PointerDown(pivotA)
	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-2))
	if g.Activated {
		t.Error("Expected second gesture to retract")
	}
}

func TestGateDisabledIgnoresGesture(t *testing.T) {
	f := newFixture(t, 0)
	g := NewGate(f.ctx, f.roster, nil, 0, slotA, pivotA)
	if g.PointerDown(pivotA) {
		t.Error("Disabled gate must refuse gestures")
	}

	g.SetEnabled(true)
	g.PointerDown(pivotA)
	g.PointerMove(vmath.V2(pivotA.X, pivotA.Y-1))
	g.SetEnabled(false)
	if g.Gesture() != GestureReturning {
		t.Errorf("Disabling mid-pull should release the lever, got %s", g.Gesture())
	}
}

func TestGateResetBoundItem(t *testing.T) {
	f := newFixture(t, 0)
	g := NewGate(f.ctx, f.roster, fixedVisuals{}, 0, slotA, pivotA)
	f.place(t, f.a, slotA)
	g.Fire()
	f.settle(t)

	g.ResetBoundItem()
	if g.Activated || f.a.Locked() {
		t.Error("Expected gate and item reset")
	}
	if f.a.Secondary.Displaced() {
		t.Error("Expected figure back at rest instantly")
	}
	if f.ctx.Registry.IsOccupied(slotA) {
		t.Error("Expected gate slot cleared")
	}
	f.settle(t)
	if f.a.Pos != restA {
		t.Errorf("Expected item home, got %s", f.a.Pos)
	}
	if vp := catalog.DefaultVisualParams(); f.a.Secondary.Order != vp.Order {
		t.Errorf("Expected default order, got %d", f.a.Secondary.Order)
	}
}

// TestGateRefireMidMoveKeepsRestAnchor fires while the figure is still moving
func TestGateRefireMidMoveKeepsRestAnchor(t *testing.T) {
	f := newFixture(t, 0)
	g := newTestGate(f)
	f.place(t, f.a, slotA)
	fig := f.a.Secondary
	step := func(frames int) {
		for i := 0; i < frames; i++ {
			f.a.Update(testFrame)
		}
	}

	g.Fire()
	step(20)
	g.Fire()
	step(10)
	if !fig.InTransit() {
		t.Fatal("Setup: figure should still be returning")
	}
	g.Fire()
	f.settle(t)
	if want := vmath.V2Add(fig.Rest, vmath.V2(5, 0)); !vmath.V2Near(fig.Pos, want, 1e-9) {
		t.Errorf("Expected offset measured from rest %s, got %s", want, fig.Pos)
	}

	g.Fire()
	f.settle(t)
	if fig.Pos != fig.Rest {
		t.Errorf("Expected figure back at rest %s, got %s", fig.Rest, fig.Pos)
	}
	t.Logf("✓ figure anchored at %s across mid-move fires", fig.Rest)
}
