package engine

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Tween moves a point from From to To over Duration
// Progress is a pure function of accumulated time, so completion is frame-rate independent
type Tween struct {
	From     vmath.Vec2
	To       vmath.Vec2
	Duration time.Duration
	Ease     vmath.EaseFunc

	elapsed time.Duration
	active  bool
}

// Start begins a new tween, superseding any running one
func (tw *Tween) Start(from, to vmath.Vec2, d time.Duration) {
	tw.From = from
	tw.To = to
	tw.Duration = d
	tw.elapsed = 0
	tw.active = true
}

// Update advances the tween by dt and returns the current point and whether it finished this call
func (tw *Tween) Update(dt time.Duration) (vmath.Vec2, bool) {
	if !tw.active {
		return tw.To, false
	}
	tw.elapsed += dt
	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		tw.active = false
		return tw.To, true
	}
	return tw.Value(), false
}

// Value returns the interpolated point at the current progress
func (tw *Tween) Value() vmath.Vec2 {
	if !tw.active {
		return tw.To
	}
	return vmath.V2Lerp(tw.From, tw.To, tw.progress())
}

func (tw *Tween) progress() float64 {
	if tw.Duration <= 0 {
		return 1
	}
	p := vmath.Clamp01(float64(tw.elapsed) / float64(tw.Duration))
	if tw.Ease != nil {
		p = tw.Ease(p)
	}
	return p
}

// Active reports whether the tween is still running
func (tw *Tween) Active() bool {
	return tw.active
}

// Stop cancels the tween in place
func (tw *Tween) Stop() {
	tw.active = false
}

// ScalarTween eases a single value, used for lever angles and fades
type ScalarTween struct {
	From, To float64
	Duration time.Duration
	Ease     vmath.EaseFunc

	elapsed time.Duration
	active  bool
}

// Start begins a new scalar tween
func (st *ScalarTween) Start(from, to float64, d time.Duration) {
	st.From, st.To, st.Duration = from, to, d
	st.elapsed = 0
	st.active = true
}

// Update advances by dt and returns the current value and whether it finished this call
func (st *ScalarTween) Update(dt time.Duration) (float64, bool) {
	if !st.active {
		return st.To, false
	}
	st.elapsed += dt
	if st.Duration <= 0 || st.elapsed >= st.Duration {
		st.active = false
		return st.To, true
	}
	p := float64(st.elapsed) / float64(st.Duration)
	if st.Ease != nil {
		p = st.Ease(p)
	}
	return vmath.Lerp(st.From, st.To, p), false
}

func (st *ScalarTween) Active() bool {
	return st.active
}

func (st *ScalarTween) Stop() {
	st.active = false
}
