package narrative

import (
	"testing"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
)

func newTestContext() *engine.GameContext {
	return engine.NewGameContext(nil, nil, engine.DefaultSettings(), nil)
}

func TestTypewriterTiming(t *testing.T) {
	tw := NewTypewriter(nil)
	var chars []rune
	completed := 0
	tw.OnCharacter = func(r rune) { chars = append(chars, r) }
	tw.OnComplete = func() { completed++ }

	tw.Reveal("ab.c")
	if !tw.IsTyping() {
		t.Fatal("Expected typing after Reveal")
	}

	tw.Update(0)
	if tw.Visible() != "a" {
		t.Errorf("Expected first character shown immediately, got %q", tw.Visible())
	}
	tw.Update(50 * time.Millisecond)
	tw.Update(50 * time.Millisecond)
	if tw.Visible() != "ab." {
		t.Errorf("Expected 'ab.' after two holds, got %q", tw.Visible())
	}

	// Punctuation holds for the longer delay
	tw.Update(400 * time.Millisecond)
	if tw.Visible() != "ab." {
		t.Errorf("Punctuation pause too short, got %q", tw.Visible())
	}
	tw.Update(100 * time.Millisecond)
	if tw.Visible() != "ab.c" || !tw.IsTyping() {
		t.Errorf("Expected last character shown and still holding, got %q", tw.Visible())
	}
	tw.Update(50 * time.Millisecond)
	if tw.IsTyping() || completed != 1 {
		t.Errorf("Expected completion once, typing=%v completed=%d", tw.IsTyping(), completed)
	}
	if string(chars) != "ab.c" {
		t.Errorf("Expected character callbacks for every rune, got %q", string(chars))
	}
}

func TestTypewriterSkipToEnd(t *testing.T) {
	ctx := newTestContext()
	tw := NewTypewriter(ctx)
	tw.Reveal("Once upon a time.")
	tw.Update(100 * time.Millisecond)
	tw.SkipToEnd()

	if tw.IsTyping() || tw.Visible() != "Once upon a time." {
		t.Errorf("Expected full text after skip, got %q", tw.Visible())
	}
	tw.SkipToEnd()

	done := 0
	for _, ev := range ctx.Events.Consume() {
		if ev.Type == event.EventTextRevealed {
			done++
		}
	}
	if done != 1 {
		t.Errorf("Expected one completion event, got %d", done)
	}
}

func TestTypewriterEmptyTextCompletes(t *testing.T) {
	tw := NewTypewriter(nil)
	completed := false
	tw.OnComplete = func() { completed = true }
	tw.Reveal("")
	if tw.IsTyping() || !completed {
		t.Error("Empty narration must complete immediately")
	}
}

func TestCurtainPairCycle(t *testing.T) {
	ctx := newTestContext()
	c := NewCurtainPair(ctx)

	c.Close()
	if !c.InTransit() || !c.Closed() {
		t.Fatal("Expected curtains moving closed")
	}
	c.Update(constant.CurtainMoveDuration)
	if c.InTransit() || c.LeftX != constant.CurtainLeftClosedX || c.RightX != constant.CurtainRightClosedX {
		t.Errorf("Expected closed marks, got %v/%v", c.LeftX, c.RightX)
	}

	c.Open()
	c.Update(constant.CurtainMoveDuration)
	if c.LeftX != constant.CurtainLeftOpenX || c.RightX != constant.CurtainRightOpenX {
		t.Errorf("Expected open marks, got %v/%v", c.LeftX, c.RightX)
	}

	evs := ctx.Events.Consume()
	if len(evs) != 2 || evs[0].Type != event.EventCurtainClosing || evs[1].Type != event.EventCurtainOpening {
		t.Errorf("Unexpected curtain events %+v", evs)
	}
}

func TestFader(t *testing.T) {
	f := NewFader()
	f.FadeIn()
	f.Update(constant.FadeDuration / 2)
	if f.Alpha <= 0 || f.Alpha >= 1 || !f.InTransit() {
		t.Errorf("Expected mid fade, alpha=%v", f.Alpha)
	}
	f.Update(constant.FadeDuration)
	if f.Alpha != 0 || f.InTransit() {
		t.Errorf("Expected clear frame, alpha=%v", f.Alpha)
	}
	f.FadeOut()
	f.Update(2 * constant.FadeDuration)
	if f.Alpha != 1 {
		t.Errorf("Expected black frame, alpha=%v", f.Alpha)
	}
}
