package noise

import "github.com/ojrac/opensimplex-go"

// Simplex wraps OpenSimplex noise.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates a new OpenSimplex generator.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// Noise2D returns a noise value for 2D coordinates.
func (s *Simplex) Noise2D(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}
