package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a deterministic pseudo-random generator.
// Every simulation owner keeps its own instance so that the draw order of one
// system never shifts the sequence seen by another.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// Uint64 returns the next raw value.
func (r *RNG) Uint64() uint64 {
	return r.r.Uint64()
}

// Intn returns a value in [0, n). Returns 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.r.Uint64() % uint64(n))
}

// Float returns a value in [0, 1).
func (r *RNG) Float() float64 {
	return r.r.Float64()
}

// Range returns a value in [lo, hi). If hi <= lo, lo is returned.
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.r.Float64()
}

// UnitVector returns a direction with a uniformly distributed angle.
func (r *RNG) UnitVector() Vec2 {
	a := r.r.Float64() * 2 * math.Pi
	return Vec2{X: math.Cos(a), Y: math.Sin(a)}
}

// MixSeed derives an independent stream seed from a base seed and a run seed.
func MixSeed(base, run uint64) uint64 {
	// splitmix64 finalizer
	z := base + run*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
