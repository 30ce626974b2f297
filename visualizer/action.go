package visualizer

import "github.com/pthm-cable/murmur/systems"

// Action is a host-independent user command.
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionToggleHUD
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionResetCamera
	ActionCycleColor
	ActionSnapshot
)

// Degrees per orbit action and distance factor per zoom action.
const (
	orbitStep = 2.0
	zoomStep  = 1.25
)

// Apply performs a.
func (v *Visualizer) Apply(a Action) {
	switch a {
	case ActionPause:
		v.paused = !v.paused
	case ActionToggleHUD:
		v.showHUD = !v.showHUD
	case ActionOrbitLeft:
		v.camera.Orbit(-orbitStep, 0)
	case ActionOrbitRight:
		v.camera.Orbit(orbitStep, 0)
	case ActionOrbitUp:
		v.camera.Orbit(0, orbitStep)
	case ActionOrbitDown:
		v.camera.Orbit(0, -orbitStep)
	case ActionZoomIn:
		v.camera.ZoomBy(1 / zoomStep)
	case ActionZoomOut:
		v.camera.ZoomBy(zoomStep)
	case ActionResetCamera:
		v.camera.Reset()
	case ActionCycleColor:
		v.setColorMode((v.colorMode + 1) % 3)
	case ActionSnapshot:
		v.saveSnapshot(nil)
	}
}

func (v *Visualizer) setColorMode(m systems.ColorMode) {
	v.colorMode = m
	if v.gfx != nil {
		v.gfx.syncColorMode(m)
	}
}
