package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/telemetry"
)

// ControlsPanel lists the overlay toggles and their keys. Hidden until
// toggled.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible reports whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle flips visibility and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	groups := overlays.Groups()

	rows := int32(1)
	for _, g := range groups {
		rows += int32(len(g.Items)) + 1
	}
	r.DrawPanel(c.x, c.y, c.width, rows*line+int32(len(groups))*4+pad*2+4)

	y := c.y + pad
	rl.DrawText("Overlays", c.x+pad, y, 16, rl.White)
	y += line + 4

	for _, g := range groups {
		rl.DrawText(g.Label, c.x+pad, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += line
		for _, d := range g.Items {
			c.drawToggle(c.x+pad, y, d, overlays.IsEnabled(d.ID), c.width-pad*2)
			y += line
		}
		y += 4
	}
	return y
}

var (
	toggleOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
	toggleOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	keyColor  = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

func (c *ControlsPanel) drawToggle(x, y int32, d OverlayDescriptor, on bool, width int32) {
	r := c.renderer
	dot, text := toggleOff, r.Theme.LabelColor
	if on {
		dot, text = toggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(d.Name, x+14, y, r.Theme.FontSize, text)

	if d.KeyLabel != "" {
		key := fmt.Sprintf("[%s]", d.KeyLabel)
		rl.DrawText(key, x+width-rl.MeasureText(key, r.Theme.FontSize), y, r.Theme.FontSize, keyColor)
	}
}

// WindowStatsPanel renders the most recent telemetry window.
type WindowStatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewWindowStatsPanel creates a new window stats panel.
func NewWindowStatsPanel(x, y, width int32) *WindowStatsPanel {
	return &WindowStatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: windowStatsSections(),
	}
}

// SetPosition updates the panel position.
func (w *WindowStatsPanel) SetPosition(x, y int32) {
	w.x = x
	w.y = y
}

// Draw renders the panel and returns the Y below it.
func (w *WindowStatsPanel) Draw(stats telemetry.WindowStats) int32 {
	r := w.renderer
	padding := r.Theme.Padding

	rows := int32(1)
	for _, sd := range w.sections {
		rows += int32(len(sd.Fields)) + 1
	}
	panelHeight := rows*(r.Theme.LineHeight+2) + padding*2
	r.DrawPanel(w.x, w.y, w.width, panelHeight)

	y := w.y + padding
	rl.DrawText(fmt.Sprintf("Window @ %.1fs", stats.SimTimeSec), w.x+padding, y, 14, rl.White)
	y += r.Theme.LineHeight + 2

	for _, sd := range w.sections {
		y = r.DrawSection(w.x+padding, y, sd, stats, w.width-padding*2)
	}
	return y
}

func windowStatsSections() []SectionDescriptor {
	get := func(f func(s telemetry.WindowStats) float64) func(any) float32 {
		return func(d any) float32 { return float32(f(d.(telemetry.WindowStats))) }
	}
	return []SectionDescriptor{
		{
			ID:    "loudness",
			Title: "Loudness",
			Fields: []FieldDescriptor{
				{ID: "mean", Label: "Mean", Widget: WidgetBar, Range: DefaultRange(), Getter: get(func(s telemetry.WindowStats) float64 { return s.LoudnessMean })},
				{ID: "peak", Label: "Peak", Widget: WidgetBar, Range: DefaultRange(), Getter: get(func(s telemetry.WindowStats) float64 { return s.LoudnessPeak })},
				{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.2f", Getter: get(func(s telemetry.WindowStats) float64 { return s.RadiusMean })},
			},
		},
		{
			ID:    "distance",
			Title: "Distance",
			Fields: []FieldDescriptor{
				{ID: "mean", Label: "Mean", Widget: WidgetText, Format: "%.1f", Getter: get(func(s telemetry.WindowStats) float64 { return s.DistanceMean })},
				{ID: "p50", Label: "P50", Widget: WidgetText, Format: "%.1f", Getter: get(func(s telemetry.WindowStats) float64 { return s.DistanceP50 })},
				{ID: "p90", Label: "P90", Widget: WidgetText, Format: "%.1f", Getter: get(func(s telemetry.WindowStats) float64 { return s.DistanceP90 })},
				{ID: "clamped", Label: "Clamped", Widget: WidgetText, Format: "%.0f", Getter: get(func(s telemetry.WindowStats) float64 { return float64(s.Clamped) })},
			},
		},
	}
}
