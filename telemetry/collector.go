package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/murmur/systems"
)

// Collector accumulates per-tick update stats within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	loudness  []float64 // One entry per tick in the window
	radiusSum float64
	clamped   int

	distances []float64 // Reused across flushes
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int64(1)
	if dt > 0 {
		ticksPerWindow = int64(math.Round(windowDurationSec / dt))
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		loudness:            make([]float64, 0, ticksPerWindow),
	}
}

// Record adds one tick's update stats to the current window.
func (c *Collector) Record(u systems.UpdateStats) {
	c.loudness = append(c.loudness, u.Loudness)
	c.radiusSum += u.Radius
	c.clamped += u.Clamped
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the recorded ticks and the swarm's
// current positions, then resets counters for the next window.
func (c *Collector) Flush(currentTick int64, swarm *systems.Swarm) WindowStats {
	c.distances = c.distances[:0]
	if swarm != nil {
		swarm.Each(func(p systems.ParticleState) {
			c.distances = append(c.distances, p.Position.Length())
		})
	}
	distMean, distP50, distP90, distMax := ComputeDistanceStats(c.distances)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Ticks:           len(c.loudness),
		Clamped:         c.clamped,
		DistanceMean:    distMean,
		DistanceP50:     distP50,
		DistanceP90:     distP90,
		DistanceMax:     distMax,
	}
	if n := len(c.loudness); n > 0 {
		stats.LoudnessMean, stats.LoudnessStd = meanStd(c.loudness)
		for _, v := range c.loudness {
			stats.LoudnessPeak = math.Max(stats.LoudnessPeak, v)
		}
		stats.RadiusMean = c.radiusSum / float64(n)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.loudness = c.loudness[:0]
	c.radiusSum = 0
	c.clamped = 0

	return stats
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 1 {
		return values[0], 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	return mean, math.Sqrt(variance)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
