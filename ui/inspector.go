package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Particle   systems.ParticleState
	Distance   float64 // From origin
	Depth      float64 // From the camera eye
	Bound      float64 // Position clamp bound
	NoiseInput [3]float64
}

// Inspector renders the selected particle.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: inspectorSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	panelHeight := int32(250)
	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	y := ins.y + padding
	contentWidth := ins.width - padding*2

	tint := tintColor(data.Particle.Tint)
	rl.DrawCircle(ins.x+padding+8, y+9, 8, tint)
	rl.DrawText(fmt.Sprintf("Particle #%d", data.Particle.Index), ins.x+padding+24, y, 18, rl.White)
	y += r.Theme.LineHeight + 8

	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, contentWidth)
	}
	return y
}

func inspectorSections() []SectionDescriptor {
	num := func(f func(d InspectorData) float64) func(any) float32 {
		return func(d any) float32 { return float32(f(d.(InspectorData))) }
	}
	axis := func(i int) func(any) float32 {
		return num(func(d InspectorData) float64 { return d.Particle.Position.Axis(i) })
	}
	boundRange := func(d any) bool { return d.(InspectorData).Bound > 0 }

	return []SectionDescriptor{
		{
			ID:    "position",
			Title: "Position",
			Fields: []FieldDescriptor{
				{ID: "x", Label: "X", Widget: WidgetText, Format: "%.2f", Getter: axis(0)},
				{ID: "y", Label: "Y", Widget: WidgetText, Format: "%.2f", Getter: axis(1)},
				{ID: "z", Label: "Z", Widget: WidgetText, Format: "%.2f", Getter: axis(2)},
				{ID: "distance", Label: "Distance", Widget: WidgetText, Format: "%.1f", Getter: num(func(d InspectorData) float64 { return d.Distance })},
				{ID: "depth", Label: "Depth", Widget: WidgetText, Format: "%.1f", Getter: num(func(d InspectorData) float64 { return d.Depth })},
			},
		},
		{
			ID:      "bounds",
			Title:   "Bound Use",
			Visible: boundRange,
			Fields: []FieldDescriptor{
				{ID: "use", Label: "Max axis", Widget: WidgetBar, Range: DefaultRange(), Getter: num(func(d InspectorData) float64 {
					p := d.Particle.Position
					m := max(abs(p.X), abs(p.Y), abs(p.Z))
					return m / d.Bound
				})},
			},
		},
		{
			ID:    "shape",
			Title: "Shape",
			Fields: []FieldDescriptor{
				{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.3f", Getter: num(func(d InspectorData) float64 { return d.Particle.Radius })},
				{ID: "tint", Label: "Tint", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return tintColor(d.(InspectorData).Particle.Tint) }},
				{ID: "noise_x", Label: "Noise in", Widget: WidgetText, TextGetter: func(d any) string {
					n := d.(InspectorData).NoiseInput
					return fmt.Sprintf("%.2f / %.0f / %.0f", n[0], n[1], n[2])
				}},
			},
		},
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
