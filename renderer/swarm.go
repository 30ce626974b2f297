package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/murmur/systems"
)

// Spheres smaller than this are drawn as points.
const minSphereRadius = 0.05

// SwarmRenderer draws the particle swarm as small spheres.
type SwarmRenderer struct {
	Mode  systems.ColorMode
	Fog   bool // Blend toward the fog color by depth
	Bound float64

	rings, slices int32
	selected      int
}

// NewSwarmRenderer creates a renderer for particles clamped to bound.
func NewSwarmRenderer(bound float64) *SwarmRenderer {
	return &SwarmRenderer{
		Fog:      true,
		Bound:    bound,
		rings:    6,
		slices:   8,
		selected: -1,
	}
}

// Select highlights the particle with the given index; -1 clears it.
func (r *SwarmRenderer) Select(index int) {
	r.selected = index
}

// Draw renders particles seen from eye at time t seconds. It must be called
// between BeginScene and EndScene.
func (r *SwarmRenderer) Draw(particles []systems.ParticleState, eye mgl64.Vec3, fog systems.FogState, t float64) {
	n := len(particles)
	for i := range particles {
		p := &particles[i]
		pos := rl.Vector3{X: float32(p.Position.X), Y: float32(p.Position.Y), Z: float32(p.Position.Z)}

		c := systems.ParticleColor(*p, n, r.Mode, t, r.Bound)
		if r.Fog {
			d := eye.Sub(mgl64.Vec3{p.Position.X, p.Position.Y, p.Position.Z}).Len()
			c = systems.Blend(c, systems.FogColor, fog.Factor(d))
		}

		if p.Radius < minSphereRadius {
			rl.DrawPoint3D(pos, c)
		} else {
			rl.DrawSphereEx(pos, float32(p.Radius), r.rings, r.slices, c)
		}

		if p.Index == r.selected {
			rl.DrawSphereWires(pos, float32(math.Max(p.Radius, 1)*1.8), 4, 6, rl.Yellow)
		}
	}
}
