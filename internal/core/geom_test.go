package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges of %+v = (%d, %d), want (25, 25)", r, r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	ints := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -5, 0, 10, 0},
		{"above", 15, 0, 10, 10},
		{"on bounds", 10, 0, 10, 10},
	}
	for _, tt := range ints {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}

	if got := Clamp(-0.5, 0, 1.5); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1.5) = %v, want 0", got)
	}
	if got := Clamp(2.25, 0, 1.5); got != 1.5 {
		t.Errorf("Clamp(2.25, 0, 1.5) = %v, want 1.5", got)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}

	if got := b.Sub(a); got != (Vec2{X: 3, Y: 4}) {
		t.Errorf("Sub() = %v, want (3, 4)", got)
	}
	if got := a.Add(b); got != (Vec2{X: 5, Y: 8}) {
		t.Errorf("Add() = %v, want (5, 8)", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 2, Y: 4}) {
		t.Errorf("Scale() = %v, want (2, 4)", got)
	}
	if got := b.Sub(a).Len(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Len() = %v, want 5", got)
	}
}

func TestRectFCircleOverlaps(t *testing.T) {
	r := RectF{Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 2, Y: 2}}

	tests := []struct {
		name   string
		center Vec2
		radius float64
		want   bool
	}{
		{"center inside", Vec2{X: 1, Y: 1}, 0.1, true},
		{"touching edge from outside", Vec2{X: 3, Y: 1}, 1, false},
		{"overlapping edge", Vec2{X: 2.5, Y: 1}, 1, true},
		{"near corner miss", Vec2{X: 3, Y: 3}, 1, false},
		{"far away", Vec2{X: 10, Y: 10}, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.CircleOverlaps(tc.center, tc.radius); got != tc.want {
				t.Errorf("CircleOverlaps(%v, %f) = %v, want %v", tc.center, tc.radius, got, tc.want)
			}
		})
	}
}

func TestRectFContainsAndClamp(t *testing.T) {
	r := RectF{Min: Vec2{X: -1, Y: -1}, Max: Vec2{X: 1, Y: 1}}

	if !r.Contains(Vec2{}) {
		t.Error("Contains(origin) should be true")
	}
	if r.Contains(Vec2{X: 1, Y: 0}) {
		t.Error("Contains should exclude the max edge")
	}

	got := r.Clamp(Vec2{X: 5, Y: -3})
	if got != (Vec2{X: 1, Y: -1}) {
		t.Errorf("Clamp() = %v, want {1 -1}", got)
	}
}

func TestLerp(t *testing.T) {
	if Lerp(0, 10, 0.25) != 2.5 {
		t.Errorf("Lerp(0, 10, 0.25) = %f, want 2.5", Lerp(0, 10, 0.25))
	}
	if Lerp(-1, 1, 0.5) != 0 {
		t.Errorf("Lerp(-1, 1, 0.5) = %f, want 0", Lerp(-1, 1, 0.5))
	}
}
