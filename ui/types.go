// Package ui draws the visualizer's HUD and side panels with raylib. Panels
// are described by field descriptors, so a panel is a table of getters over
// the data it shows rather than hand-placed draw calls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType selects how a field is drawn.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Label and formatted value
	WidgetBar                           // Horizontal bar over Range
	WidgetColorSwatch                   // Small color square
)

// FieldRange is the span a bar covers.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns [0, 1], the loudness range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor is one row of a panel. Getters receive the panel's data.
type FieldDescriptor struct {
	ID          string
	Label       string
	Widget      WidgetType
	Format      string // Printf verb for Getter values
	Range       FieldRange
	Getter      func(any) float32
	TextGetter  func(any) string // Overrides Getter for text rows
	ColorGetter func(any) rl.Color
}

// SectionDescriptor is a titled group of rows.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool // nil = always shown
}

// Theme holds panel colors and metrics.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme is dark translucent panels over the scene.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 12, B: 16, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Color{R: 120, G: 220, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 128, G: 255, B: 0, A: 255},
		BarFillMedium:  rl.Color{R: 255, G: 200, B: 0, A: 255},
		BarFillHigh:    rl.Color{R: 255, G: 0, B: 128, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
