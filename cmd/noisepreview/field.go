package main

import (
	"image/color"

	"github.com/pthm-cable/murmur/noise"
)

// previewParams selects the slice of noise the swarm samples.
type previewParams struct {
	Kind      string
	Seed      int64
	Axis      int     // 0, 1 or 2
	Frequency float64 // Noise input step per particle index
	Offsets   [3]float64
	Count     int     // Particles spread across the preview width
	TimeSpan  float64 // Seconds covered by the preview height
}

// fillField samples src into a size x size grid: columns walk the particle
// index, rows walk time from t0. Values are in [-1, 1].
func fillField(grid []float64, size int, src noise.Source, p previewParams, t0 float64) {
	for y := 0; y < size; y++ {
		t := t0 + float64(y)/float64(size)*p.TimeSpan
		for x := 0; x < size; x++ {
			idx := float64(x) * float64(p.Count) / float64(size)
			grid[y*size+x] = src.Noise2D(idx*p.Frequency+p.Offsets[p.Axis], t)
		}
	}
}

// fieldStats returns the min, max and mean of grid.
func fieldStats(grid []float64) (lo, hi, mean float64) {
	if len(grid) == 0 {
		return 0, 0, 0
	}
	lo, hi = grid[0], grid[0]
	var sum float64
	for _, v := range grid {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return lo, hi, sum / float64(len(grid))
}

// colorFor maps a noise value in [-1, 1] through dark blue, cyan, yellow and
// white.
func colorFor(n float64) color.RGBA {
	v := (n + 1) / 2
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	var r, g, b float64
	switch {
	case v < 0.25:
		t := v / 0.25
		r, g, b = 10+t*30, 20+t*60, 60+t*100
	case v < 0.5:
		t := (v - 0.25) / 0.25
		r, g, b = 40+t*20, 80+t*120, 160+t*40
	case v < 0.75:
		t := (v - 0.5) / 0.25
		r, g, b = 60+t*140, 200-t*40, 200-t*150
	default:
		t := (v - 0.75) / 0.25
		r, g, b = 200+t*55, 160+t*95, 50+t*205
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
