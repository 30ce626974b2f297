package systems

import (
	"math"
	"testing"
)

func TestFog(t *testing.T) {
	p := FogParams{AlphaGain: 0.5, Near: 1, BaseFar: 100, FarGain: 200}

	tests := []struct {
		name      string
		loudness  float64
		wantAlpha float64
		wantFar   float64
	}{
		{"silent", 0, 0, 100},
		{"half", 0.5, 0.25, 200},
		{"full", 1, 0.5, 300},
		{"over full clamps", 4, 0.5, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fog(tt.loudness, p)
			if math.Abs(f.Alpha-tt.wantAlpha) > 1e-12 {
				t.Errorf("alpha = %v, want %v", f.Alpha, tt.wantAlpha)
			}
			if math.Abs(f.Far-tt.wantFar) > 1e-12 {
				t.Errorf("far = %v, want %v", f.Far, tt.wantFar)
			}
			if f.Near != 1 {
				t.Errorf("near = %v, want 1", f.Near)
			}
		})
	}
}

func TestFogFactor(t *testing.T) {
	f := FogState{Alpha: 0.5, Near: 0, Far: 100}
	if v := f.Factor(-10); v != 0 {
		t.Errorf("Factor before near = %v, want 0", v)
	}
	if v := f.Factor(50); math.Abs(v-0.25) > 1e-12 {
		t.Errorf("Factor midway = %v, want 0.25", v)
	}
	if v := f.Factor(500); v != 0.5 {
		t.Errorf("Factor beyond far = %v, want 0.5", v)
	}
}
