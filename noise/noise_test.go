package noise

import (
	"errors"
	"math"
	"testing"
)

func TestNewKinds(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{"simplex", KindSimplex, false},
		{"empty defaults to simplex", "", false},
		{"perlin", KindPerlin, false},
		{"unknown", "worley", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(tt.kind, 7)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("New(%q) error = %v, want ErrUnknownKind", tt.kind, err)
				}
				return
			}
			if err != nil || src == nil {
				t.Fatalf("New(%q) = %v, %v", tt.kind, src, err)
			}
		})
	}
}

func TestSourcesDeterministic(t *testing.T) {
	for _, kind := range []string{KindSimplex, KindPerlin} {
		t.Run(kind, func(t *testing.T) {
			a, _ := New(kind, 42)
			b, _ := New(kind, 42)
			for i := 0; i < 200; i++ {
				x := float64(i)*0.4 + 1000
				y := float64(i) * 0.013
				if va, vb := a.Noise2D(x, y), b.Noise2D(x, y); va != vb {
					t.Fatalf("sample %d differs: %v vs %v", i, va, vb)
				}
			}
		})
	}
}

func TestSourcesBounded(t *testing.T) {
	for _, kind := range []string{KindSimplex, KindPerlin} {
		t.Run(kind, func(t *testing.T) {
			src, _ := New(kind, 3)
			var nonZero bool
			for i := 0; i < 2000; i++ {
				v := src.Noise2D(float64(i)*0.37-300, float64(i)*0.11)
				if math.IsNaN(v) || math.Abs(v) > 1.5 {
					t.Fatalf("sample %d out of range: %v", i, v)
				}
				if v != 0 {
					nonZero = true
				}
			}
			if !nonZero {
				t.Error("source produced only zeros")
			}
		})
	}
}

func TestPerlinZeroAtLattice(t *testing.T) {
	p := NewPerlin(1)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			if v := p.Noise2D(float64(x), float64(y)); v != 0 {
				t.Errorf("Noise2D(%d, %d) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestPerlinSeedsDiffer(t *testing.T) {
	a := NewPerlin(1)
	b := NewPerlin(2)
	same := true
	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.5+0.25, 0.75
		if a.Noise2D(x, y) != b.Noise2D(x, y) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical fields")
	}
}

func TestConstant(t *testing.T) {
	src := Constant(1.0)
	if v := src.Noise2D(123, 456); v != 1.0 {
		t.Errorf("Constant(1).Noise2D = %v", v)
	}
}
