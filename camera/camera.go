// Package camera provides a 3D orbit camera that looks at the swarm.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/murmur/config"
)

// Pitch stays short of the poles so the up vector never aligns with the view.
const maxPitch = 89.0

// Camera orbits a target point at a fixed distance.
type Camera struct {
	// Target is the point the camera looks at
	Target mgl64.Vec3

	// Orbit angles in degrees
	Yaw, Pitch float64

	// Distance from target
	Distance float64

	// Projection parameters
	FOV       float64 // Vertical, degrees
	Near, Far float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints on Distance
	MinDistance, MaxDistance float64

	// Automatic orbit in degrees per second
	OrbitSpeed float64

	initial pose // Restored by Reset
}

type pose struct {
	yaw, pitch, distance float64
}

// New creates a camera from cfg looking at the origin.
func New(viewportW, viewportH float64, cfg config.CameraConfig) *Camera {
	c := &Camera{
		Yaw:         cfg.Yaw,
		Pitch:       mgl64.Clamp(cfg.Pitch, -maxPitch, maxPitch),
		Distance:    cfg.Distance,
		FOV:         cfg.FOV,
		Near:        cfg.Near,
		Far:         cfg.Far,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: math.Max(cfg.Near*10, 1),
		MaxDistance: cfg.Far / 2,
		OrbitSpeed:  cfg.OrbitSpeed,
	}
	if c.MaxDistance < c.MinDistance {
		c.MaxDistance = c.MinDistance
	}
	c.Distance = mgl64.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.initial = pose{yaw: c.Yaw, pitch: c.Pitch, distance: c.Distance}
	return c
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	offset := mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projector caches the combined matrix for projecting many points per frame.
type Projector struct {
	viewProj mgl64.Mat4
	eye      mgl64.Vec3
	w, h     float64
	focal    float64 // Pixels per world unit at depth 1
}

// Projector snapshots the current pose.
func (c *Camera) Projector() Projector {
	return Projector{
		viewProj: c.Projection().Mul4(c.View()),
		eye:      c.Eye(),
		w:        c.ViewportW,
		h:        c.ViewportH,
		focal:    c.ViewportH / 2 / math.Tan(mgl64.DegToRad(c.FOV)/2),
	}
}

// Project maps a world point to screen pixels, origin top-left.
// depth is the distance from the eye. ok is false when the point lies
// outside the view frustum.
func (p Projector) Project(world mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	clip := p.viewProj.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	sx = (ndc.X() + 1) / 2 * p.w
	sy = (1 - ndc.Y()) / 2 * p.h
	depth = world.Sub(p.eye).Len()
	ok = ndc.X() >= -1 && ndc.X() <= 1 && ndc.Y() >= -1 && ndc.Y() <= 1 && ndc.Z() >= -1 && ndc.Z() <= 1
	return sx, sy, depth, ok
}

// ScreenRadius returns the on-screen radius in pixels of a sphere of world
// radius r at the given depth.
func (p Projector) ScreenRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * p.focal / depth
}

// WorldToScreen projects one point with the current pose.
func (c *Camera) WorldToScreen(world mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	return c.Projector().Project(world)
}

// Update advances the automatic orbit by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.OrbitSpeed != 0 {
		c.Orbit(c.OrbitSpeed*dt, 0)
	}
}

// Orbit rotates the camera around the target by the given degrees.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 360)
	if c.Yaw < 0 {
		c.Yaw += 360
	}
	c.Pitch = mgl64.Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = mgl64.Clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by factor; factor > 1 moves closer.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to its initial pose.
func (c *Camera) Reset() {
	c.Yaw = c.initial.yaw
	c.Pitch = c.initial.pitch
	c.Distance = c.initial.distance
}
