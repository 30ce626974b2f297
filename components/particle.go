// Package components defines the ECS components carried by swarm particles.
package components

import "math"

// Particle identifies a swarm member by its stable index (0..N-1).
type Particle struct {
	Index int
}

// Position is a particle's location in scene units.
type Position struct {
	X, Y, Z float64
}

// Axis returns the component for axis 0 (x), 1 (y) or 2 (z).
func (p Position) Axis(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// SetAxis sets the component for axis 0 (x), 1 (y) or 2 (z).
func (p *Position) SetAxis(i int, v float64) {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		p.Z = v
	}
}

// Length returns the distance from the origin.
func (p Position) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Radius is a particle's rendered size. Never negative.
type Radius struct {
	Value float64
}

// Tint is a particle's fixed display color.
type Tint struct {
	R, G, B uint8
}
