package visualizer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/ui"
)

// Update handles input and advances one tick at the frame's wall-clock time.
func (v *Visualizer) Update() {
	v.handleInput()
	v.perf.RecordFrame()
	v.Step(float64(rl.GetFrameTime()))
}

var heldKeys = []struct {
	key    int32
	action Action
}{
	{rl.KeyLeft, ActionOrbitLeft},
	{rl.KeyRight, ActionOrbitRight},
	{rl.KeyUp, ActionOrbitUp},
	{rl.KeyDown, ActionOrbitDown},
}

var pressedKeys = []struct {
	key    int32
	action Action
}{
	{rl.KeySpace, ActionPause},
	{rl.KeyH, ActionToggleHUD},
	{rl.KeyEqual, ActionZoomIn},
	{rl.KeyKpAdd, ActionZoomIn},
	{rl.KeyMinus, ActionZoomOut},
	{rl.KeyKpSubtract, ActionZoomOut},
	{rl.KeyHome, ActionResetCamera},
	{rl.KeyN, ActionSnapshot},
}

// handleInput processes keyboard and mouse input.
func (v *Visualizer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for _, k := range pressedKeys {
		if rl.IsKeyPressed(k.key) {
			v.Apply(k.action)
		}
	}
	for _, k := range heldKeys {
		if rl.IsKeyDown(k.key) {
			v.Apply(k.action)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.ZoomBy(1 - float64(wheel)*0.1)
	}

	if v.gfx == nil {
		return
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.gfx.controls.Toggle()
	}
	v.handleOverlayKeys()

	// Clicks on the tuning panel belong to raygui
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !v.gfx.overPanel(rl.GetMousePosition()) {
		m := rl.GetMousePosition()
		v.Select(float64(m.X), float64(m.Y))
	}
}

// handleOverlayKeys toggles overlays and keeps the color mode in step.
func (v *Visualizer) handleOverlayKeys() {
	for _, desc := range v.gfx.overlays.All() {
		if desc.Key == 0 || !rl.IsKeyPressed(desc.Key) {
			continue
		}
		v.gfx.overlays.Toggle(desc.ID)

		switch desc.ID {
		case ui.OverlayTints, ui.OverlayHeat:
			v.colorMode = v.gfx.overlays.ColorMode()
			v.gfx.swarm.Mode = v.colorMode
		}
	}
}

// handleResize propagates window size changes to the camera and panels.
func (v *Visualizer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	v.camera.Resize(w, h)
	if v.gfx != nil {
		v.gfx.layout(int32(w), int32(h))
	}
}

// syncColorMode mirrors m into the overlay toggles.
func (g *graphics) syncColorMode(m systems.ColorMode) {
	g.overlays.SetColorMode(m)
	g.swarm.Mode = m
}
