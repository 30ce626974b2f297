package systems

// SystemInfo names one stage of the tick for display.
type SystemInfo struct {
	ID          string // Perf phase key
	Name        string
	Description string
}

// tickStages are the visualizer tick phases in execution order.
var tickStages = []SystemInfo{
	{ID: "audio", Name: "Audio", Description: "Single loudness read"},
	{ID: "motion", Name: "Motion", Description: "Noise step, clamp and radius for every particle"},
	{ID: "fog", Name: "Fog", Description: "Loudness driven fog range"},
	{ID: "telemetry", Name: "Telemetry", Description: "Window stats, CSV and bookmarks"},
}

// SystemRegistry maps perf phase IDs to display names, so the perf panel
// and the collector agree on naming.
type SystemRegistry struct {
	order []SystemInfo
	byID  map[string]int
}

// NewSystemRegistry returns a registry holding the tick stages.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]int)}
	for _, info := range tickStages {
		r.Register(info)
	}
	return r
}

// Register adds or replaces a stage.
func (r *SystemRegistry) Register(info SystemInfo) {
	if i, ok := r.byID[info.ID]; ok {
		r.order[i] = info
		return
	}
	r.byID[info.ID] = len(r.order)
	r.order = append(r.order, info)
}

// Get returns the stage with the given ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.byID[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.order[i], true
}

// GetName returns the display name, or id itself when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// IDs returns stage IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, info := range r.order {
		ids[i] = info.ID
	}
	return ids
}
