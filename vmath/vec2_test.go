package vmath

import (
	"math"
	"testing"
)

func TestV2Dist(t *testing.T) {
	if d := V2Dist(V2(0, 0), V2(3, 4)); d != 5 {
		t.Errorf("Expected 5, got %v", d)
	}
}

func TestV2LerpEndpoints(t *testing.T) {
	a, b := V2(-1, 2), V2(3, -6)
	if got := V2Lerp(a, b, 0); got != a {
		t.Errorf("t=0: expected %v, got %v", a, got)
	}
	if got := V2Lerp(a, b, 1); got != b {
		t.Errorf("t=1: expected %v, got %v", b, got)
	}
	if got := V2Lerp(a, b, 0.5); got != V2(1, -2) {
		t.Errorf("t=0.5: expected (1,-2), got %v", got)
	}
}

func TestV2NearIsStrict(t *testing.T) {
	if !V2Near(V2(1, 1), V2(1.005, 1), 0.01) {
		t.Error("Expected points 0.005 apart to be near at eps 0.01")
	}
	if V2Near(V2(0, 0), V2(0.02, 0), 0.01) {
		t.Error("Expected points 0.02 apart to not be near at eps 0.01")
	}
}

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.875},
	}
	for _, tc := range tests {
		if got := EaseOutCubic(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestApproachExpClampsFactor(t *testing.T) {
	if got := ApproachExp(-2, 0, 2, 1); got != 0 {
		t.Errorf("Expected full step to land on target, got %v", got)
	}
	if got := ApproachExp(-2, 0, 2, 0.25); got != -1 {
		t.Errorf("Expected half step to -1, got %v", got)
	}
}
