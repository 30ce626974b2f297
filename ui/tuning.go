package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningValues are the live-adjustable motion gains.
type TuningValues struct {
	AudioGain  float64
	RadiusGain float64
}

// TuningPanel renders raygui sliders for the motion gains.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	MaxAudioGain  float64
	MaxRadiusGain float64
}

// NewTuningPanel creates a tuning panel. Sliders span [0, 4x] the defaults.
func NewTuningPanel(x, y, width int32, defaults TuningValues) *TuningPanel {
	return &TuningPanel{
		renderer:      NewRenderer(),
		x:             x,
		y:             y,
		width:         width,
		MaxAudioGain:  maxOr(defaults.AudioGain*4, 20),
		MaxRadiusGain: maxOr(defaults.RadiusGain*4, 2),
	}
}

func maxOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the sliders and returns the possibly changed values and
// whether anything changed.
func (t *TuningPanel) Draw(v TuningValues) (TuningValues, bool) {
	r := t.renderer
	padding := r.Theme.Padding
	panelHeight := int32(92)
	r.DrawPanel(t.x, t.y, t.width, panelHeight)

	y := float32(t.y + padding)
	rl.DrawText("Tuning", t.x+padding, int32(y), 14, rl.White)
	y += 22

	sliderX := float32(t.x + padding + 70)
	sliderW := float32(t.width-padding*2) - 70 - 50

	rl.DrawText("Audio gain", t.x+padding, int32(y)+3, r.Theme.FontSize, r.Theme.LabelColor)
	audio := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: 18},
		"", fmt.Sprintf("%.2f", v.AudioGain),
		float32(v.AudioGain), 0, float32(t.MaxAudioGain),
	)
	y += 26

	rl.DrawText("Radius gain", t.x+padding, int32(y)+3, r.Theme.FontSize, r.Theme.LabelColor)
	radius := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: 18},
		"", fmt.Sprintf("%.2f", v.RadiusGain),
		float32(v.RadiusGain), 0, float32(t.MaxRadiusGain),
	)

	next := TuningValues{AudioGain: float64(audio), RadiusGain: float64(radius)}
	changed := float32(next.AudioGain) != float32(v.AudioGain) || float32(next.RadiusGain) != float32(v.RadiusGain)
	if !changed {
		return v, false
	}
	return next, true
}
