package telemetry

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/murmur/systems"
)

func TestNewSnapshot(t *testing.T) {
	swarm := testSwarm(t, 5)
	swarm.Update(systems.Frame{Level: fixedLevel(1), Time: 0.5})

	snap := NewSnapshot(swarm, 42, 0.5)

	if snap.Version != SnapshotVersion || snap.Seed != 42 || snap.Tick != 1 {
		t.Errorf("header = version %d seed %d tick %d", snap.Version, snap.Seed, snap.Tick)
	}
	if len(snap.Particles) != 5 {
		t.Fatalf("particles = %d, want 5", len(snap.Particles))
	}
	for i, p := range snap.Particles {
		if p.Index != i {
			t.Errorf("particle %d has index %d", i, p.Index)
		}
		if math.Abs(p.X-52.5) > 1e-9 || math.Abs(p.Radius-2) > 1e-9 {
			t.Errorf("particle %d = (%v, r=%v), want (52.5, r=2)", i, p.X, p.Radius)
		}
		if len(p.Color) != 7 || !strings.HasPrefix(p.Color, "#") {
			t.Errorf("particle %d color %q is not #rrggbb", i, p.Color)
		}
	}
	if snap.LastStats.Radius != 2 {
		t.Errorf("last stats radius = %v", snap.LastStats.Radius)
	}
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := NewSnapshot(testSwarm(t, 3), 7, 0)
	snapshot.Bookmark = &Bookmark{
		Type:        BookmarkOnset,
		Tick:        0,
		Description: "Test bookmark",
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_0_onset.json" {
		t.Errorf("snapshot file = %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Seed != 7 || len(loaded.Particles) != 3 {
		t.Errorf("loaded seed %d with %d particles", loaded.Seed, len(loaded.Particles))
	}
	if loaded.Params.AxisOffsets != snapshot.Params.AxisOffsets {
		t.Errorf("axis offsets = %v, want %v", loaded.Params.AxisOffsets, snapshot.Params.AxisOffsets)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkOnset {
		t.Error("bookmark not preserved")
	}
	if loaded.Particles[2] != snapshot.Particles[2] {
		t.Errorf("particle 2 = %+v, want %+v", loaded.Particles[2], snapshot.Particles[2])
	}
}

func TestSnapshotRestore(t *testing.T) {
	swarm := testSwarm(t, 4)
	for i := 0; i < 3; i++ {
		swarm.Update(systems.Frame{Level: fixedLevel(0.8), Time: float64(i)})
	}
	path, err := SaveSnapshot(NewSnapshot(swarm, 1, 3), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	fresh := testSwarm(t, 4)
	if err := loaded.Restore(fresh); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if fresh.Tick() != 3 {
		t.Errorf("tick = %d, want 3", fresh.Tick())
	}
	want := swarm.Snapshot(nil)
	got := fresh.Snapshot(nil)
	for i := range want {
		if math.Abs(got[i].Position.X-want[i].Position.X) > 1e-9 || math.Abs(got[i].Radius-want[i].Radius) > 1e-9 {
			t.Errorf("particle %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if err := loaded.Restore(testSwarm(t, 5)); err == nil {
		t.Error("expected error restoring into a larger swarm")
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	data, _ := json.Marshal(map[string]any{"version": SnapshotVersion + 1})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unknown snapshot version")
	}
}
