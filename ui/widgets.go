package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/components"
)

// Renderer draws panel primitives in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer uses DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader returns the Y below the header.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

func (r *Renderer) drawLabel(x, y int32, label string) {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawLabelValue draws "label: value" and returns the next row's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, width int32) int32 {
	r.drawLabel(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws value as a fraction of rng, followed by the number.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	var frac float32
	if rng.Max > rng.Min {
		frac = clamp01((value - rng.Min) / (rng.Max - rng.Min))
	}
	bx := x + r.Theme.LabelWidth
	bw := width - r.Theme.LabelWidth - 50

	r.drawLabel(x, y, label)
	rl.DrawRectangle(bx, y+2, bw, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(bx, y+2, int32(float32(bw)*frac), r.Theme.BarHeight, r.levelColor(frac))
	rl.DrawText(fmt.Sprintf("%.2f", value), bx+bw+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// levelColor shades a [0, 1] fill: green, then amber past 0.5, pink past 0.8.
func (r *Renderer) levelColor(v float32) rl.Color {
	switch {
	case v > 0.8:
		return r.Theme.BarFillHigh
	case v > 0.5:
		return r.Theme.BarFillMedium
	}
	return r.Theme.BarFillLow
}

// DrawMeter draws a vertical [0, 1] level meter with a peak line.
func (r *Renderer) DrawMeter(x, y, width, height int32, value, peak float32) {
	value = clamp01(value)
	fill := int32(float32(height) * value)
	peakY := y + height - int32(float32(height)*clamp01(peak))

	rl.DrawRectangle(x, y, width, height, r.Theme.BarBg)
	rl.DrawRectangle(x, y+height-fill, width, fill, r.levelColor(value))
	rl.DrawLine(x, peakY, x+width, peakY, rl.White)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

func clamp01(v float32) float32 {
	if v < 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DrawColorSwatch draws a label and a small square of color.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color, width int32) int32 {
	r.drawLabel(x, y, label)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, color)
	rl.DrawRectangleLines(x+r.Theme.LabelWidth, y+1, 12, 12, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}

// DrawField draws one row and returns the Y below it.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, v, fd.Range, width)
	case WidgetColorSwatch:
		if fd.ColorGetter == nil {
			return y
		}
		return r.DrawColorSwatch(x, y, fd.Label, fd.ColorGetter(data), width)
	}

	text := ""
	switch {
	case fd.TextGetter != nil:
		text = fd.TextGetter(data)
	case fd.Getter != nil:
		text = fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return r.DrawLabelValue(x, y, fd.Label, text, width)
}

// DrawSection draws a titled group unless its Visible check fails.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// tintColor converts a particle tint to an opaque raylib color.
func tintColor(t components.Tint) rl.Color {
	return rl.Color{R: t.R, G: t.G, B: t.B, A: 255}
}
