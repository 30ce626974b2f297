package visualizer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/systems"
)

// Screen pixels a click may miss a particle by and still select it.
const pickSlack = 6.0

// pickParticle returns the index of the particle under screen point (mx, my).
// Among overlapping hits the one nearest the camera wins.
func pickParticle(particles []systems.ParticleState, proj camera.Projector, mx, my float64) (int, bool) {
	best := -1
	bestDepth := math.Inf(1)

	for i := range particles {
		p := &particles[i]
		sx, sy, depth, ok := proj.Project(vec(*p))
		if !ok {
			continue
		}
		reach := proj.ScreenRadius(p.Radius, depth) + pickSlack
		if math.Hypot(sx-mx, sy-my) > reach {
			continue
		}
		if depth < bestDepth {
			best = p.Index
			bestDepth = depth
		}
	}
	return best, best >= 0
}

// Select marks the particle under screen point (x, y), or clears the
// selection when nothing is there.
func (v *Visualizer) Select(x, y float64) bool {
	idx, ok := pickParticle(v.particles, v.camera.Projector(), x, y)
	if !ok {
		idx = -1
	}
	v.selected = idx
	if v.gfx != nil {
		v.gfx.swarm.Select(idx)
	}
	return ok
}

// Selected returns the selected particle.
func (v *Visualizer) Selected() (systems.ParticleState, bool) {
	if v.selected < 0 {
		return systems.ParticleState{}, false
	}
	return v.swarm.Particle(v.selected)
}

func vec(p systems.ParticleState) mgl64.Vec3 {
	return mgl64.Vec3{p.Position.X, p.Position.Y, p.Position.Z}
}
