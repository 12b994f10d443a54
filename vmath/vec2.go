package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a float64 2D vector in scene space
type Vec2 struct {
	X, Y float64
}

// V2 builds a Vec2
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Dist returns the euclidean distance between a and b
func V2Dist(a, b Vec2) float64 {
	return V2Mag(V2Sub(a, b))
}

// V2Lerp interpolates a->b, t is not clamped
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// V2Near reports whether a and b lie strictly within eps of each other
func V2Near(a, b Vec2, eps float64) bool {
	return V2Dist(a, b) < eps
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}
