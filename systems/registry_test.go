package systems

import "testing"

func TestRegistryDefaults(t *testing.T) {
	reg := NewSystemRegistry()

	ids := reg.IDs()
	want := []string{"audio", "motion", "fog", "telemetry"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if name := reg.GetName("motion"); name != "Motion" {
		t.Errorf("GetName(motion) = %q", name)
	}
	if name := reg.GetName("unknown"); name != "unknown" {
		t.Errorf("GetName fallback = %q", name)
	}
}

func TestRegistryReplace(t *testing.T) {
	reg := NewSystemRegistry()
	reg.Register(SystemInfo{ID: "fog", Name: "Haze"})
	reg.Register(SystemInfo{ID: "render", Name: "Render"})

	if got := reg.GetName("fog"); got != "Haze" {
		t.Errorf("GetName(fog) = %q, want Haze", got)
	}
	ids := reg.IDs()
	if len(ids) != 5 || ids[2] != "fog" || ids[4] != "render" {
		t.Errorf("IDs() = %v", ids)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) found an entry")
	}
}
