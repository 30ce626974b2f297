package visualizer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/renderer"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
	"github.com/pthm-cable/murmur/ui"
)

const (
	panelWidth  = 280
	legendText  = "[Space] pause  [H] HUD  [Arrows] orbit  [+/-] zoom  [Home] reset  [N] snapshot  [Tab] overlays  [Click] inspect"
	meterMargin = 44
)

// graphics holds the raylib render state.
type graphics struct {
	swarm    *renderer.SwarmRenderer
	backdrop *renderer.BackdropRenderer

	overlays    *ui.OverlayRegistry
	registry    *systems.SystemRegistry
	hud         *ui.HUD
	controls    *ui.ControlsPanel
	tuning      *ui.TuningPanel
	inspector   *ui.Inspector
	windowStats *ui.WindowStatsPanel
	perfPanel   *ui.PerfPanel

	tuningRect rl.Rectangle
}

func newGraphics(v *Visualizer) *graphics {
	params := v.swarm.Params()
	g := &graphics{
		swarm:       renderer.NewSwarmRenderer(params.MaxPosition),
		backdrop:    renderer.NewBackdropRenderer(v.cfg.Camera.BackdropRad),
		overlays:    ui.NewOverlayRegistry(),
		registry:    systems.NewSystemRegistry(),
		hud:         ui.NewHUD(),
		controls:    ui.NewControlsPanel(10, 120, 240),
		tuning:      ui.NewTuningPanel(0, 0, panelWidth, ui.TuningValues{AudioGain: params.AudioGain, RadiusGain: params.RadiusGain}),
		inspector:   ui.NewInspector(0, 0, panelWidth),
		windowStats: ui.NewWindowStatsPanel(0, 0, panelWidth),
		perfPanel:   ui.NewPerfPanel(0, 0),
	}
	g.layout(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height))
	return g
}

// layout stacks the side panels down the right edge, left of the meter.
func (g *graphics) layout(w, h int32) {
	x := w - panelWidth - meterMargin
	g.tuning.SetPosition(x, 10)
	g.tuningRect = rl.Rectangle{X: float32(x), Y: 10, Width: panelWidth, Height: 92}
	g.inspector.SetPosition(x, 112)
	g.windowStats.SetPosition(x, 372)
	g.perfPanel.SetPosition(10, h-140)
}

func (g *graphics) overPanel(m rl.Vector2) bool {
	return g.overlays.IsEnabled(ui.OverlayTuning) && rl.CheckCollisionPointRec(m, g.tuningRect)
}

// Draw renders one frame.
func (v *Visualizer) Draw() {
	g := v.gfx
	if g == nil {
		return
	}

	rl.BeginDrawing()

	fog := v.fog
	if !g.overlays.IsEnabled(ui.OverlayFog) {
		fog.Alpha = 0
	}

	renderer.BeginScene(v.camera, fog)
	if g.overlays.IsEnabled(ui.OverlayBackdrop) {
		g.backdrop.Draw(v.elapsed, fog)
	}
	if g.overlays.IsEnabled(ui.OverlayBounds) {
		renderer.DrawBounds(v.swarm.Params().MaxPosition)
	}
	if g.overlays.IsEnabled(ui.OverlayAxes) {
		renderer.DrawAxes(v.cfg.Camera.BackdropRad)
	}
	g.swarm.Draw(v.particles, v.camera.Eye(), fog, v.elapsed)
	renderer.EndScene()

	if v.showHUD {
		g.drawHUD(v)
	}
	g.drawPanels(v)

	rl.EndDrawing()
}

func (g *graphics) drawHUD(v *Visualizer) {
	last := v.swarm.LastStats()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	g.hud.Draw(ui.HUDData{
		Title:        "murmur",
		Source:       v.cfg.Audio.Source,
		Particles:    v.swarm.Len(),
		Tick:         v.Tick(),
		Time:         v.elapsed,
		FPS:          rl.GetFPS(),
		Paused:       v.paused,
		Loudness:     last.Loudness,
		LoudnessPeak: v.lastWindow.LoudnessPeak,
		Influence:    last.Influence,
		Radius:       last.Radius,
		FogFar:       v.fog.Far,
		ScreenWidth:  w,
		ScreenHeight: h,
	})
	g.hud.DrawControls(w, h, legendText)
	g.controls.Draw(g.overlays)
}

func (g *graphics) drawPanels(v *Visualizer) {
	if g.overlays.IsEnabled(ui.OverlayTuning) {
		params := v.swarm.Params()
		cur := ui.TuningValues{AudioGain: params.AudioGain, RadiusGain: params.RadiusGain}
		if next, changed := g.tuning.Draw(cur); changed {
			if err := v.SetGains(next.AudioGain, next.RadiusGain); err != nil {
				slog.Warn("gain change rejected", "error", err)
			}
		}
	}

	if p, ok := v.Selected(); ok {
		g.inspector.Draw(v.inspectorData(p))
	}

	if stats, ok := v.LastWindow(); ok && g.overlays.IsEnabled(ui.OverlayWindowStats) {
		g.windowStats.Draw(stats)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		ps := v.perf.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			SystemTimes: ps.PhaseAvg,
			Total:       ps.AvgTickDuration,
			P95:         ps.P95TickDuration,
			Budget:      frameBudget(v.cfg.Screen.TargetFPS),
			OverBudget:  ps.OverBudget,
			Registry:    g.registry,
		}, telemetry.Phases)
	}
}
