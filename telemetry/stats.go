// Package telemetry provides swarm window stats, bookmarks, snapshots and
// performance tracking.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	// Loudness seen by the motion update
	LoudnessMean float64 `csv:"loudness_mean"`
	LoudnessPeak float64 `csv:"loudness_peak"`
	LoudnessStd  float64 `csv:"loudness_std"`

	// Radius assigned each tick
	RadiusMean float64 `csv:"radius_mean"`

	// Axis values that hit the position bound during the window
	Clamped int `csv:"clamped"`

	// Distance from origin, sampled at window end
	DistanceMean float64 `csv:"distance_mean"`
	DistanceP50  float64 `csv:"distance_p50"`
	DistanceP90  float64 `csv:"distance_p90"`
	DistanceMax  float64 `csv:"distance_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistanceStats calculates mean, median, p90 and max of distances.
// values is not modified.
func ComputeDistanceStats(values []float64) (mean, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ticks", s.Ticks),
		slog.Float64("loudness_mean", s.LoudnessMean),
		slog.Float64("loudness_peak", s.LoudnessPeak),
		slog.Float64("loudness_std", s.LoudnessStd),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Int("clamped", s.Clamped),
		slog.Float64("distance_mean", s.DistanceMean),
		slog.Float64("distance_p50", s.DistanceP50),
		slog.Float64("distance_p90", s.DistanceP90),
		slog.Float64("distance_max", s.DistanceMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"ticks", s.Ticks,
		"loudness_mean", s.LoudnessMean,
		"loudness_peak", s.LoudnessPeak,
		"loudness_std", s.LoudnessStd,
		"radius_mean", s.RadiusMean,
		"clamped", s.Clamped,
		"distance_mean", s.DistanceMean,
		"distance_p50", s.DistanceP50,
		"distance_p90", s.DistanceP90,
		"distance_max", s.DistanceMax,
	)
}
