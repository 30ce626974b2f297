// Package noise provides deterministic coherent noise sources for procedural motion.
package noise

import (
	"errors"
	"fmt"
)

// Kinds accepted by New.
const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// ErrUnknownKind is returned by New for an unrecognized generator name.
var ErrUnknownKind = errors.New("unknown noise kind")

// Source samples smooth pseudo-random values in roughly [-1, 1].
// Implementations are pure: the same input always yields the same output.
type Source interface {
	Noise2D(x, y float64) float64
}

// Func adapts a plain function to a Source.
type Func func(x, y float64) float64

// Noise2D calls f(x, y).
func (f Func) Noise2D(x, y float64) float64 {
	return f(x, y)
}

// Constant returns a Source that always yields v.
func Constant(v float64) Source {
	return Func(func(_, _ float64) float64 { return v })
}

// New builds the generator named by kind, seeded with seed.
func New(kind string, seed int64) (Source, error) {
	switch kind {
	case KindSimplex, "":
		return NewSimplex(seed), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
