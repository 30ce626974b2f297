package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// BackdropRenderer draws the pulsing wireframe sphere around the swarm.
type BackdropRenderer struct {
	Radius        float64
	rings, slices int32
}

// NewBackdropRenderer creates a backdrop of the given radius.
func NewBackdropRenderer(radius float64) *BackdropRenderer {
	return &BackdropRenderer{Radius: radius, rings: 24, slices: 32}
}

// Color is the wire color at time t. It brightens a little so the dim
// gradient still reads against a black clear color.
func (b *BackdropRenderer) Color(t float64, fog systems.FogState) rl.Color {
	c := systems.BackdropColor(0.5, 0.5, t)
	c = systems.Blend(c, rl.White, 0.15)
	return systems.Blend(c, systems.FogColor, fog.Factor(b.Radius))
}

// Draw renders the backdrop. It must be called between BeginScene and EndScene.
func (b *BackdropRenderer) Draw(t float64, fog systems.FogState) {
	if b.Radius <= 0 {
		return
	}
	rl.DrawSphereWires(rl.Vector3{}, float32(b.Radius), b.rings, b.slices, b.Color(t, fog))
}
