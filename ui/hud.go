package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// HUDData is the per-frame state shown in the top-left corner.
type HUDData struct {
	Title        string
	Source       string // Loudness source kind
	Particles    int
	Tick         int64
	Time         float64 // Seconds since start
	FPS          int32
	Paused       bool
	Loudness     float64
	LoudnessPeak float64 // Peak over the current stats window
	Influence    float64
	Radius       float64
	FogFar       float64
	ScreenWidth  int32
	ScreenHeight int32
}

// lines formats the status rows under the title.
func (d HUDData) lines() []string {
	return []string{
		fmt.Sprintf("Particles: %d | Source: %s", d.Particles, d.Source),
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", d.Tick, d.Time, d.FPS),
		fmt.Sprintf("Loudness: %.2f | Influence: %.2f | Radius: %.2f | Fog far: %.0f",
			d.Loudness, d.Influence, d.Radius, d.FogFar),
	}
}

// HUD draws the status text and the loudness meter.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(35)
	for _, line := range data.lines() {
		rl.DrawText(line, 10, y, 16, rl.LightGray)
		y += 20
	}
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}

	h.renderer.DrawMeter(data.ScreenWidth-34, 10, 20, 160, float32(data.Loudness), float32(data.LoudnessPeak))
}

// DrawControls renders the key legend along the bottom edge.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData is the tick timing shown by the perf panel.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration // Average per phase
	Total       time.Duration            // Average tick
	P95         time.Duration
	Budget      time.Duration // One frame at the target FPS
	OverBudget  float64       // Fraction of ticks over Budget
	Registry    *systems.SystemRegistry
}

// PerfPanel lists phase timings with a tick budget bar.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a perf panel at x, y.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition moves the panel.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phases in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  p95: %s", data.Total.Round(time.Microsecond), data.P95.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	if data.Budget > 0 {
		used := float32(data.Total) / float32(data.Budget)
		y = p.renderer.DrawBar(x, y, "Budget", used, FieldRange{Min: 0, Max: 1}, 240)
		if data.OverBudget > 0 {
			rl.DrawText(fmt.Sprintf("%.0f%% ticks over budget", data.OverBudget*100), x, y, 12, rl.Red)
			y += 14
		}
	}

	for _, phase := range phases {
		avg := data.SystemTimes[phase]
		pct := 0.0
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		switch {
		case pct > 50:
			color = rl.Red
		case pct > 25:
			color = rl.Orange
		}

		name := phase
		if data.Registry != nil {
			name = data.Registry.GetName(phase)
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
