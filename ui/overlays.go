package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// OverlayID names a toggleable layer or panel.
type OverlayID string

const (
	OverlayBackdrop    OverlayID = "backdrop"
	OverlayFog         OverlayID = "fog"
	OverlayTints       OverlayID = "tints"
	OverlayHeat        OverlayID = "heat"
	OverlayBounds      OverlayID = "bounds"
	OverlayAxes        OverlayID = "axes"
	OverlayTuning      OverlayID = "tuning"
	OverlayPerf        OverlayID = "perf"
	OverlayWindowStats OverlayID = "window_stats"
)

// OverlayDescriptor describes one toggle.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // Shown in the controls panel
	Category    string
	On          bool        // Enabled at startup
	Exclusive   []OverlayID // Switched off when this one is switched on
}

// Overlay categories in display order.
var categories = []struct{ id, label string }{
	{"scene", "Scene"},
	{"color", "Particle Color"},
	{"debug", "Debug"},
	{"panels", "Panels"},
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayBackdrop, Name: "Backdrop", Description: "Wireframe sphere around the swarm",
		Key: rl.KeyB, KeyLabel: "B", Category: "scene", On: true},
	{ID: OverlayFog, Name: "Fog", Description: "Loudness driven depth fog",
		Key: rl.KeyF, KeyLabel: "F", Category: "scene", On: true},
	{ID: OverlayTints, Name: "Random Tints", Description: "Each particle's fixed random color",
		Key: rl.KeyC, KeyLabel: "C", Category: "color", Exclusive: []OverlayID{OverlayHeat}},
	{ID: OverlayHeat, Name: "Distance Heat", Description: "Color by distance from the origin",
		Key: rl.KeyV, KeyLabel: "V", Category: "color", Exclusive: []OverlayID{OverlayTints}},
	{ID: OverlayBounds, Name: "Bounds", Description: "Position clamp cube",
		Key: rl.KeyG, KeyLabel: "G", Category: "debug"},
	{ID: OverlayAxes, Name: "Axes", Description: "World X, Y and Z axes",
		Key: rl.KeyX, KeyLabel: "X", Category: "debug"},
	{ID: OverlayTuning, Name: "Tuning", Description: "Audio and radius gain sliders",
		Key: rl.KeyT, KeyLabel: "T", Category: "panels"},
	{ID: OverlayPerf, Name: "Performance", Description: "Tick phase timing",
		Key: rl.KeyP, KeyLabel: "P", Category: "panels"},
	{ID: OverlayWindowStats, Name: "Window Stats", Description: "Loudness and spread over the last stats window",
		Key: rl.KeyS, KeyLabel: "S", Category: "panels"},
}

// OverlayGroup is one category of the controls panel.
type OverlayGroup struct {
	Label string
	Items []OverlayDescriptor
}

// OverlayRegistry holds overlay descriptors and their on/off state.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	index       map[OverlayID]int
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry returns the standard overlays in their startup state.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		index:   make(map[OverlayID]int),
		enabled: make(map[OverlayID]bool),
	}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay, enabled when d.On is set.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	r.index[d.ID] = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
	r.SetEnabled(d.ID, d.On)
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state; enabling switches off its exclusives.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.enabled[id] = on
	if on {
		for _, other := range r.descriptors[i].Exclusive {
			r.enabled[other] = false
		}
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// Groups returns the overlays grouped by category in display order.
// Categories without overlays are skipped.
func (r *OverlayRegistry) Groups() []OverlayGroup {
	var groups []OverlayGroup
	for _, c := range categories {
		g := OverlayGroup{Label: c.label}
		for _, d := range r.descriptors {
			if d.Category == c.id {
				g.Items = append(g.Items, d)
			}
		}
		if len(g.Items) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// ColorMode maps the exclusive color overlays to a particle color mode.
func (r *OverlayRegistry) ColorMode() systems.ColorMode {
	switch {
	case r.enabled[OverlayTints]:
		return systems.ColorTint
	case r.enabled[OverlayHeat]:
		return systems.ColorHeat
	}
	return systems.ColorGlow
}

// SetColorMode mirrors m into the color overlays.
func (r *OverlayRegistry) SetColorMode(m systems.ColorMode) {
	r.SetEnabled(OverlayTints, m == systems.ColorTint)
	r.SetEnabled(OverlayHeat, m == systems.ColorHeat)
}
