package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the swarm state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Tick    int64   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	Params    systems.MotionParams `json:"params"`
	LastStats systems.UpdateStats  `json:"last_stats"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's state.
type ParticleState struct {
	Index  int     `json:"i"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"r"`
	Color  string  `json:"color"`
}

// NewSnapshot captures swarm in index order.
func NewSnapshot(swarm *systems.Swarm, seed int64, simTime float64) *Snapshot {
	s := &Snapshot{
		Version:   SnapshotVersion,
		Seed:      seed,
		Tick:      swarm.Tick(),
		SimTime:   simTime,
		Params:    swarm.Params(),
		LastStats: swarm.LastStats(),
		Particles: make([]ParticleState, 0, swarm.Len()),
	}
	swarm.Each(func(p systems.ParticleState) {
		s.Particles = append(s.Particles, ParticleState{
			Index:  p.Index,
			X:      p.Position.X,
			Y:      p.Position.Y,
			Z:      p.Position.Z,
			Radius: p.Radius,
			Color:  fmt.Sprintf("#%02x%02x%02x", p.Tint.R, p.Tint.G, p.Tint.B),
		})
	})
	return s
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}

// Restore writes the snapshot's positions, radii and tick into swarm.
// Tints stay as swarm assigned them.
func (s *Snapshot) Restore(swarm *systems.Swarm) error {
	states := make([]systems.ParticleState, len(s.Particles))
	for i, p := range s.Particles {
		states[i] = systems.ParticleState{
			Index:    p.Index,
			Position: components.Position{X: p.X, Y: p.Y, Z: p.Z},
			Radius:   p.Radius,
		}
	}
	if err := swarm.Restore(s.Tick, states); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}
