package audio

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep"
)

// pump pulls frames from a streamer at real-time cadence and publishes the
// analyzed loudness.
type pump struct {
	stream   beep.Streamer
	analyzer *Analyzer
	level    *Level

	buf  [][2]float64
	mono []float64
	rate beep.SampleRate
}

func newPump(stream beep.Streamer, rate beep.SampleRate, analyzer *Analyzer, level *Level) *pump {
	n := analyzer.Bins() * 2
	return &pump{
		stream:   stream,
		analyzer: analyzer,
		level:    level,
		buf:      make([][2]float64, n),
		mono:     make([]float64, 0, n),
		rate:     rate,
	}
}

// interval is the wall time covered by one frame.
func (p *pump) interval() time.Duration {
	return p.rate.D(len(p.buf))
}

// step reads one frame and publishes its loudness. It returns io.EOF when
// the streamer is drained.
func (p *pump) step() error {
	n, ok := p.stream.Stream(p.buf)
	if n > 0 {
		p.mono = Mono(p.mono, p.buf[:n])
		p.level.Store(p.analyzer.Process(p.mono))
	}
	if !ok {
		if err := p.stream.Err(); err != nil {
			return err
		}
		return io.EOF
	}
	return nil
}

// run steps until ctx is done or the stream ends. A drained stream leaves
// the level at silence.
func (p *pump) run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.step(); err != nil {
				p.level.Store(0)
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

// tap passes samples through while feeding them to the analyzer, for
// sources that are also played on the speaker.
func (p *pump) tap() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := p.stream.Stream(samples)
		if n > 0 {
			p.mono = Mono(p.mono, samples[:n])
			p.level.Store(p.analyzer.Process(p.mono))
		}
		if !ok {
			p.level.Store(0)
		}
		return n, ok
	})
}
