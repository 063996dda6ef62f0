// Package core holds what the game and the platform share: geometry, the
// character screen, input actions and seeded randomness. It imports no UI
// packages so game logic can be tested headless.
package core

import (
	"cmp"
	"math"
)

// Rect is an area of screen cells anchored at its top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right and Bottom are exclusive edges.
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Vec2 is a point or direction on the simulation plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// RectF is an axis-aligned rectangle in simulation units.
type RectF struct {
	Min, Max Vec2
}

// Contains reports whether p lies inside the rectangle (max edges exclusive).
func (r RectF) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Clamp returns p moved to the nearest point inside the rectangle.
func (r RectF) Clamp(p Vec2) Vec2 {
	return Vec2{X: Clamp(p.X, r.Min.X, r.Max.X), Y: Clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// CircleOverlaps reports whether a circle intersects the rectangle.
func (r RectF) CircleOverlaps(center Vec2, radius float64) bool {
	closest := r.Clamp(center)
	dx := center.X - closest.X
	dy := center.Y - closest.Y
	return dx*dx+dy*dy < radius*radius
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
