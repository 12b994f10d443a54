package vmath

import "math"

// EaseFunc maps normalized progress [0,1] to eased progress
type EaseFunc func(t float64) float64

// EaseLinear is the identity easing
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic decelerates toward the end: 1-(1-t)^3
func EaseOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates scalars, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ApproachExp moves current toward target by an exponential step of rate*dt
// Mirrors the per-frame Lerp(current, target, rate*dt) idiom with the factor clamped
func ApproachExp(current, target, rate, dt float64) float64 {
	return Lerp(current, target, Clamp01(rate*dt))
}

// Round rounds half away from zero
func Round(v float64) float64 {
	return math.Round(v)
}
