// Package audio turns live or recorded sound into a normalized loudness scalar.
package audio

import (
	"math"
	"sync/atomic"
)

// Level is the process-wide loudness scalar. One sampler goroutine writes it;
// the tick loop reads it. Both sides are single atomic operations.
type Level struct {
	bits atomic.Uint64
}

// Store publishes v, clamped to [0, 1]. NaN stores 0.
func (l *Level) Store(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	l.bits.Store(math.Float64bits(v))
}

// Loudness returns the latest published value.
func (l *Level) Loudness() float64 {
	return math.Float64frombits(l.bits.Load())
}
