package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/pthm-cable/murmur/config"
)

// AnalyzerParams shapes the spectrum analysis.
type AnalyzerParams struct {
	FFTSize   int     // Window length, power of two
	Smoothing float64 // Per-bin exponential smoothing in [0, 1)
	MinDB     float64 // Magnitude mapped to byte 0
	MaxDB     float64 // Magnitude mapped to byte 255
}

// AnalyzerParamsFromConfig maps the audio config section.
func AnalyzerParamsFromConfig(c config.AudioConfig) AnalyzerParams {
	return AnalyzerParams{
		FFTSize:   c.FFTSize,
		Smoothing: c.Smoothing,
		MinDB:     c.MinDB,
		MaxDB:     c.MaxDB,
	}
}

// Analyzer computes loudness as the mean byte-scaled frequency magnitude over
// the most recent FFTSize samples, the way a browser AnalyserNode reports
// getByteFrequencyData. Not safe for concurrent use.
type Analyzer struct {
	params   AnalyzerParams
	fft      *fourier.FFT
	window   []float64 // Blackman coefficients
	history  []float64 // Last FFTSize samples, oldest first
	frame    []float64 // Windowed copy handed to the FFT
	coeffs   []complex128
	smoothed []float64 // Per-bin smoothed magnitude
}

// NewAnalyzer allocates an analyzer. FFTSize is rounded up to a power of two.
func NewAnalyzer(p AnalyzerParams) *Analyzer {
	n := 1
	for n < p.FFTSize {
		n <<= 1
	}
	p.FFTSize = n

	a := &Analyzer{
		params:   p,
		fft:      fourier.NewFFT(n),
		window:   make([]float64, n),
		history:  make([]float64, n),
		frame:    make([]float64, n),
		smoothed: make([]float64, n/2),
	}
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / float64(n)
		a.window[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return a
}

// Bins returns the number of frequency bins (FFTSize / 2).
func (a *Analyzer) Bins() int {
	return len(a.smoothed)
}

// Process appends mono samples in [-1, 1] to the window and returns the
// loudness in [0, 1] of the updated window.
func (a *Analyzer) Process(samples []float64) float64 {
	a.push(samples)

	for i, v := range a.history {
		a.frame[i] = v * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	n := float64(len(a.history))
	tau := a.params.Smoothing
	scale := 255 / (a.params.MaxDB - a.params.MinDB)

	var sum float64
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) / n
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		sum += a.byteValue(a.smoothed[k], scale)
	}

	avg := sum / float64(len(a.smoothed))
	return math.Min(avg/255, 1)
}

// Reset clears history and smoothing.
func (a *Analyzer) Reset() {
	clear(a.history)
	clear(a.smoothed)
}

func (a *Analyzer) push(samples []float64) {
	n := len(a.history)
	if len(samples) >= n {
		copy(a.history, samples[len(samples)-n:])
		return
	}
	copy(a.history, a.history[len(samples):])
	copy(a.history[n-len(samples):], samples)
}

// byteValue maps a linear magnitude onto 0..255 across [MinDB, MaxDB].
func (a *Analyzer) byteValue(mag, scale float64) float64 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(scale * (db - a.params.MinDB))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Mono averages stereo frames into dst and returns it.
func Mono(dst []float64, frames [][2]float64) []float64 {
	dst = dst[:0]
	for _, f := range frames {
		dst = append(dst, (f[0]+f[1])/2)
	}
	return dst
}

// PCM16 converts signed 16-bit samples into dst and returns it.
func PCM16(dst []float64, pcm []int16) []float64 {
	dst = dst[:0]
	for _, s := range pcm {
		dst = append(dst, float64(s)/32768)
	}
	return dst
}
