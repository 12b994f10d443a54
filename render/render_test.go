package render

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/narrative"
	"github.com/lixenwraith/once-upon-a-lever/system"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

func TestViewport_RoundTrip(t *testing.T) {
	view := NewViewport(120, 32)
	if view.OriginX != 4 || view.OriginY != 1 {
		t.Fatalf("origin %d,%d", view.OriginX, view.OriginY)
	}

	x, y := view.WorldToCell(vmath.V2(0, 0))
	if x != view.OriginX+StageWidth/2 || y != view.OriginY+StageHeight/2 {
		t.Errorf("stage center at %d,%d", x, y)
	}

	for _, c := range [][2]int{{4, 1}, {60, 13}, {115, 24}, {0, 0}} {
		gx, gy := view.WorldToCell(view.CellCenter(c[0], c[1]))
		if gx != c[0] || gy != c[1] {
			t.Errorf("cell %v round-trips to %d,%d", c, gx, gy)
		}
	}
	if view.StatusRow() != view.OriginY+StageHeight+constant.TextRows {
		t.Errorf("status row %d", view.StatusRow())
	}

	small := NewViewport(10, 5)
	if small.OriginX != 0 || small.OriginY != 0 {
		t.Errorf("small screen origin %d,%d", small.OriginX, small.OriginY)
	}
}

func TestMouseTracker_Transitions(t *testing.T) {
	view := NewViewport(120, 32)
	var m MouseTracker

	steps := []struct {
		x, y    int
		buttons tcell.ButtonMask
		want    Gesture
	}{
		{10, 10, tcell.ButtonNone, GestureNone},
		{10, 10, tcell.Button1, GestureDown},
		{10, 10, tcell.Button1, GestureNone},
		{12, 11, tcell.Button1, GestureMove},
		{12, 11, tcell.ButtonNone, GestureUp},
		{14, 11, tcell.ButtonNone, GestureNone},
		{14, 11, tcell.Button2, GestureNone},
	}
	for i, s := range steps {
		g, at := m.Translate(tcell.NewEventMouse(s.x, s.y, s.buttons, 0), view)
		if g != s.want {
			t.Fatalf("step %d: %s, want %s", i, g, s.want)
		}
		if g != GestureNone {
			if cx, cy := view.WorldToCell(at); cx != s.x || cy != s.y {
				t.Errorf("step %d: point maps back to %d,%d", i, cx, cy)
			}
		}
	}
	if m.Pressed() {
		t.Error("still pressed after release")
	}
	t.Logf("✓ %d mouse reports translated", len(steps))
}

type orderProbe struct {
	name string
	log  *[]string
	hide bool
}

func (p *orderProbe) Render(RenderContext, *RenderBuffer) { *p.log = append(*p.log, p.name) }
func (p *orderProbe) IsVisible() bool                     { return !p.hide }

func TestOrchestrator_PriorityOrder(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	var calls []string
	o := NewRenderOrchestrator(screen)
	o.Register(&orderProbe{name: "fade", log: &calls}, PriorityFade)
	o.Register(&orderProbe{name: "stage", log: &calls}, PriorityBoard)
	o.Register(&orderProbe{name: "items", log: &calls}, PriorityItems)
	o.Register(&orderProbe{name: "hidden", log: &calls, hide: true}, PriorityItems)
	o.Register(&orderProbe{name: "items2", log: &calls}, PriorityItems)

	o.RenderFrame(RenderContext{View: o.Viewport()})
	if got := strings.Join(calls, ","); got != "stage,items,items2,fade" {
		t.Errorf("order %s", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"once upon a lever", 9, []string{"once upon", "a lever"}},
		{"unbreakableword here", 5, []string{"unbreakableword", "here"}},
		{"two\nlines", 20, []string{"two", "lines"}},
	}
	for _, tt := range tests {
		got := Wrap(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestBuffer_Darken(t *testing.T) {
	buf := NewRenderBuffer(2, 1)
	buf.Set(0, 0, 'x', RGB{200, 100, 50}, RGB{100, 100, 100}, BlendReplace, 1)
	buf.Darken(0.5)
	c := buf.Get(0, 0)
	if c.Rune != 'x' || c.Fg != (RGB{100, 50, 25}) || c.Bg != (RGB{50, 50, 50}) {
		t.Errorf("darkened cell %+v", c)
	}
	buf.Darken(1)
	if buf.Get(1, 0).Bg != RGBBlack {
		t.Error("full darken should be black")
	}
	if buf.Get(5, 5) != emptyCell {
		t.Error("out of bounds read should be empty")
	}
}

// rowText returns the runes of one buffer row
func rowText(buf *RenderBuffer, y int) string {
	w, _ := buf.Bounds()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(buf.Get(x, y).Rune)
	}
	return sb.String()
}

func TestFrame_DefaultStory(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	cat, err := catalog.Default(logger)
	if err != nil {
		t.Fatal(err)
	}
	layout, err := catalog.DefaultLayout(logger)
	if err != nil {
		t.Fatal(err)
	}
	ctx := engine.NewGameContext(logger, layout.Positions(), engine.DefaultSettings(), nil)
	tw := narrative.NewTypewriter(ctx)
	curtains := narrative.NewCurtainPair(ctx)
	fader := narrative.NewFader()
	game, err := system.Build(ctx, cat, layout, system.Collaborators{
		Narrator: tw, Curtain: curtains, Fader: fader,
	}, system.Options{})
	if err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(120, 32)

	o := NewRenderOrchestrator(screen)
	o.Register(NewStageRenderer(game), PriorityBoard)
	o.Register(NewFigureRenderer(game), PriorityFigures)
	o.Register(NewItemRenderer(game), PriorityItems)
	o.Register(NewCurtainRenderer(curtains), PriorityCurtain)
	o.Register(NewNarrationRenderer(tw), PriorityText)
	o.Register(NewStatusBarRenderer(game), PriorityUI)
	o.Register(NewFadeRenderer(fader), PriorityFade)

	game.Scene.Start()
	for i := 0; i < 5000 && game.Scene.Phase() != "Interaction.Ready"; i++ {
		tw.SkipToEnd()
		game.Scheduler.Tick(16 * time.Millisecond)
	}
	if game.Scene.Phase() != "Interaction.Ready" {
		t.Fatalf("stuck in %s", game.Scene.Phase())
	}

	view := o.Viewport()
	o.RenderFrame(RenderContext{View: view})
	buf := o.Buffer()

	status := rowText(buf, view.StatusRow())
	if !strings.Contains(status, "scene 1/13") || !strings.Contains(status, "Interaction.Ready") {
		t.Errorf("status %q", status)
	}

	crown := game.Roster.ByName("crown")
	_, y := view.WorldToCell(crown.Pos)
	if row := rowText(buf, y); !strings.Contains(row, "[crown]") {
		t.Errorf("palette row %q", row)
	}
	if text := rowText(buf, view.TextTop()); !strings.Contains(text, "Once, a King") {
		t.Errorf("narration %q", text)
	}
	if fader.Alpha != 0 {
		t.Errorf("fader alpha %v after boot", fader.Alpha)
	}

	// Drag the crown onto the first gate slot through the mouse path
	var m MouseTracker
	cx, cy := view.WorldToCell(crown.Pos)
	sx, sy := view.WorldToCell(game.Gates.All()[0].Slot)
	for _, ev := range []*tcell.EventMouse{
		tcell.NewEventMouse(cx, cy, tcell.Button1, 0),
		tcell.NewEventMouse((cx+sx)/2, (cy+sy)/2, tcell.Button1, 0),
		tcell.NewEventMouse(sx, sy, tcell.Button1, 0),
		tcell.NewEventMouse(sx, sy, tcell.ButtonNone, 0),
	} {
		g, at := m.Translate(ev, view)
		Apply(game.Input, g, at)
	}
	for i := 0; i < 60; i++ {
		game.Scheduler.Tick(16 * time.Millisecond)
	}
	if !game.Gates.Holds(crown) {
		t.Fatalf("crown at %v not in the gate slot", crown.Pos)
	}
	t.Logf("✓ crown dragged to %v through terminal mouse reports", crown.Pos)
}
