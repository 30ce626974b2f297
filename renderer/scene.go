package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/systems"
)

// Camera3D converts the orbit camera into raylib's camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Eye()),
		Target:     vec3(c.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}

// BeginScene clears to the fog color and enters 3D mode. Callers must pair it
// with EndScene.
func BeginScene(c *camera.Camera, fog systems.FogState) {
	rl.SetClipPlanes(c.Near, c.Far)
	rl.ClearBackground(fog.ClearColor())
	rl.BeginMode3D(Camera3D(c))
}

// EndScene leaves 3D mode.
func EndScene() {
	rl.EndMode3D()
}

// DrawBounds outlines the cube particles are clamped to.
func DrawBounds(bound float64) {
	side := float32(2 * bound)
	rl.DrawCubeWires(rl.Vector3{}, side, side, side, rl.Fade(rl.Gray, 0.6))
}

// DrawAxes draws the world axes from the origin, X red, Y green, Z blue.
func DrawAxes(length float64) {
	l := float32(length)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{X: l}, rl.Red)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{Y: l}, rl.Green)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{Z: l}, rl.Blue)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}
