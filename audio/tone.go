package audio

import (
	"context"
	"fmt"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/pthm-cable/murmur/config"
)

func openTone(ctx context.Context, cfg *config.Config) (Source, error) {
	return OpenTone(ctx, cfg.Audio)
}

// OpenTone samples a synthetic sine whose amplitude swells and fades at
// c.ToneLFO Hz. It stands in for a microphone in demos and headless runs.
func OpenTone(ctx context.Context, c config.AudioConfig) (*StreamSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sr := beep.SampleRate(c.SampleRate)
	stream, err := modulatedTone(sr, c.ToneFreq, c.ToneLFO)
	if err != nil {
		return nil, err
	}

	analyzer := NewAnalyzer(AnalyzerParamsFromConfig(c))
	p := newPump(stream, sr, analyzer, nil)
	return startStream(ctx, fmt.Sprintf("tone:%gHz", c.ToneFreq), p, nil), nil
}

// modulatedTone scales a sine carrier by 0.5*(1 - cos(2*pi*lfo*t)), starting
// silent. lfo <= 0 leaves the carrier at full scale.
func modulatedTone(sr beep.SampleRate, freq, lfo float64) (beep.Streamer, error) {
	carrier, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("building tone: %w", err)
	}
	if lfo <= 0 {
		return carrier, nil
	}

	step := 2 * math.Pi * lfo / float64(sr)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := carrier.Stream(samples)
		for i := range samples[:n] {
			g := 0.5 * (1 - math.Cos(phase))
			samples[i][0] *= g
			samples[i][1] *= g
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return n, ok
	}), nil
}
