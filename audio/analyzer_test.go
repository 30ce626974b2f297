package audio

import (
	"math"
	"math/rand"
	"testing"
)

func defaultAnalyzer() *Analyzer {
	return NewAnalyzer(AnalyzerParams{FFTSize: 256, Smoothing: 0.8, MinDB: -100, MaxDB: -30})
}

func sine(n int, amp, freq, rate float64, offset int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i+offset)/rate)
	}
	return out
}

// settle feeds frames until smoothing has converged and returns the last level.
func settle(a *Analyzer, frame func(k int) []float64) float64 {
	var v float64
	for k := 0; k < 60; k++ {
		v = a.Process(frame(k))
	}
	return v
}

func TestAnalyzerSilence(t *testing.T) {
	a := defaultAnalyzer()
	if v := settle(a, func(int) []float64 { return make([]float64, 256) }); v != 0 {
		t.Errorf("silence level = %v, want 0", v)
	}
}

func TestAnalyzerSine(t *testing.T) {
	a := defaultAnalyzer()
	v := settle(a, func(k int) []float64 { return sine(256, 1, 1000, 48000, k*256) })
	if v <= 0 || v > 1 {
		t.Errorf("full-scale sine level = %v, want in (0, 1]", v)
	}
}

func TestAnalyzerLouderIsHigher(t *testing.T) {
	loud := settle(defaultAnalyzer(), func(k int) []float64 { return sine(256, 1, 1000, 48000, k*256) })
	quiet := settle(defaultAnalyzer(), func(k int) []float64 { return sine(256, 0.01, 1000, 48000, k*256) })
	if loud <= quiet {
		t.Errorf("loud %v <= quiet %v", loud, quiet)
	}
}

func TestAnalyzerNoiseBeatsTone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	noise := settle(defaultAnalyzer(), func(int) []float64 {
		out := make([]float64, 256)
		for i := range out {
			out[i] = rng.Float64()*2 - 1
		}
		return out
	})
	tone := settle(defaultAnalyzer(), func(k int) []float64 { return sine(256, 1, 1000, 48000, k*256) })
	if noise <= tone {
		t.Errorf("broadband noise %v <= pure tone %v", noise, tone)
	}
	if noise > 1 {
		t.Errorf("noise level %v above 1", noise)
	}
}

func TestAnalyzerSmoothingDecays(t *testing.T) {
	a := defaultAnalyzer()
	loud := settle(a, func(k int) []float64 { return sine(256, 1, 1000, 48000, k*256) })
	first := a.Process(make([]float64, 256))
	if first <= 0 {
		t.Errorf("level dropped to %v immediately, want a smoothed tail", first)
	}
	if first > loud {
		t.Errorf("tail %v exceeds steady level %v", first, loud)
	}
	if v := settle(a, func(int) []float64 { return make([]float64, 256) }); v != 0 {
		t.Errorf("level after long silence = %v, want 0", v)
	}
}

func TestAnalyzerShortFrames(t *testing.T) {
	a := defaultAnalyzer()
	var v float64
	for k := 0; k < 400; k++ {
		v = a.Process(sine(32, 1, 1000, 48000, k*32))
	}
	if v <= 0 {
		t.Errorf("level from short frames = %v, want > 0", v)
	}
}

func TestAnalyzerRoundsFFTSize(t *testing.T) {
	a := NewAnalyzer(AnalyzerParams{FFTSize: 200, Smoothing: 0.8, MinDB: -100, MaxDB: -30})
	if a.Bins() != 128 {
		t.Errorf("Bins() = %d, want 128", a.Bins())
	}
}

func TestAnalyzerReset(t *testing.T) {
	a := defaultAnalyzer()
	settle(a, func(k int) []float64 { return sine(256, 1, 1000, 48000, k*256) })
	a.Reset()
	if v := a.Process(nil); v != 0 {
		t.Errorf("level after reset = %v, want 0", v)
	}
}

func TestConversions(t *testing.T) {
	mono := Mono(nil, [][2]float64{{1, 0}, {-1, -1}, {0.5, 0.5}})
	want := []float64{0.5, -1, 0.5}
	for i := range want {
		if mono[i] != want[i] {
			t.Errorf("Mono[%d] = %v, want %v", i, mono[i], want[i])
		}
	}

	pcm := PCM16(nil, []int16{0, 16384, -32768})
	wantPCM := []float64{0, 0.5, -1}
	for i := range wantPCM {
		if pcm[i] != wantPCM[i] {
			t.Errorf("PCM16[%d] = %v, want %v", i, pcm[i], wantPCM[i])
		}
	}
}
