package narrative

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
)

// Typewriter reveals narration one character at a time
// Each revealed character holds for 1/TypewriterCharsPerSecond, punctuation for TypewriterPunctuationDelay
type Typewriter struct {
	// OnCharacter is called after each character's hold elapses
	OnCharacter func(r rune)
	// OnComplete is called once the last character's hold elapses or on SkipToEnd
	OnComplete func()

	ctx *engine.GameContext

	text   []rune
	shown  int
	hold   time.Duration // Hold owed by the last revealed character
	acc    time.Duration
	typing bool
}

// NewTypewriter creates an idle typewriter
func NewTypewriter(ctx *engine.GameContext) *Typewriter {
	return &Typewriter{ctx: ctx}
}

func isPunctuation(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

func charHold(r rune) time.Duration {
	if isPunctuation(r) {
		return constant.TypewriterPunctuationDelay
	}
	return time.Second / constant.TypewriterCharsPerSecond
}

// Reveal starts typing text, replacing whatever was shown
func (tw *Typewriter) Reveal(text string) {
	tw.text = []rune(text)
	tw.shown = 0
	tw.hold = 0
	tw.acc = 0
	tw.typing = len(tw.text) > 0
	if !tw.typing {
		tw.complete()
	}
}

// SkipToEnd shows the whole text at once
func (tw *Typewriter) SkipToEnd() {
	if !tw.typing {
		return
	}
	tw.shown = len(tw.text)
	tw.typing = false
	tw.complete()
}

// IsTyping reports whether characters are still being revealed
func (tw *Typewriter) IsTyping() bool {
	return tw.typing
}

// Visible returns the revealed part of the text
func (tw *Typewriter) Visible() string {
	return string(tw.text[:tw.shown])
}

// Full returns the whole current text
func (tw *Typewriter) Full() string {
	return string(tw.text)
}

// Update reveals as many characters as dt allows
func (tw *Typewriter) Update(dt time.Duration) {
	if !tw.typing {
		return
	}
	tw.acc += dt
	for tw.typing && tw.acc >= tw.hold {
		tw.acc -= tw.hold
		if tw.shown > 0 {
			r := tw.text[tw.shown-1]
			if tw.OnCharacter != nil {
				tw.OnCharacter(r)
			}
			if tw.ctx != nil {
				tw.ctx.Emit(event.EventCharacterRevealed, string(r))
			}
		}
		if tw.shown == len(tw.text) {
			tw.typing = false
			tw.complete()
			return
		}
		tw.shown++
		tw.hold = charHold(tw.text[tw.shown-1])
	}
}

func (tw *Typewriter) complete() {
	if tw.OnComplete != nil {
		tw.OnComplete()
	}
	if tw.ctx != nil {
		tw.ctx.Emit(event.EventTextRevealed, nil)
	}
}
