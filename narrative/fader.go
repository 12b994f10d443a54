package narrative

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
)

// Fader blends the whole frame to and from black
// Alpha 1 is fully black
type Fader struct {
	Alpha float64

	fade engine.ScalarTween
}

// NewFader creates a fader starting black, ready to fade in
func NewFader() *Fader {
	return &Fader{Alpha: 1}
}

// FadeIn clears to the scene
func (f *Fader) FadeIn() {
	f.fade.Start(f.Alpha, 0, constant.FadeDuration)
}

// FadeOut darkens to black
func (f *Fader) FadeOut() {
	f.fade.Start(f.Alpha, 1, constant.FadeDuration)
}

// InTransit reports whether a fade is running
func (f *Fader) InTransit() bool {
	return f.fade.Active()
}

// Update advances the fade
func (f *Fader) Update(dt time.Duration) {
	if f.fade.Active() {
		f.Alpha, _ = f.fade.Update(dt)
	}
}
