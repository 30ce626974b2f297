package systems

import (
	"image/color"
	"math"
)

var (
	glowGreen = [3]float64{0.5, 1.0, 0.0}
	glowCyan  = [3]float64{0.0, 0.5, 1.0}
	glowPink  = [3]float64{1.0, 0.0, 0.5}
	glowWhite = [3]float64{0.95, 0.8, 1.0}

	backdropWarm = [3]float64{0.35, 0.13, 0.2}
	backdropCool = [3]float64{0.2, 0.13, 0.35}
)

// GlowColor is the particle surface gradient at surface coordinate (u, v)
// and time t seconds. It cycles between green, cyan and pink and pulses
// toward white. The raylib shader computes the same function per fragment.
func GlowColor(u, v, t float64) color.RGBA {
	osc := math.Sin(u*10+t)*0.5 + 0.5
	grad := smoothstep(0, 1, v+osc*0.1)
	c := mix3(mix3(glowGreen, glowCyan, grad), glowPink, osc)
	c = mix3(c, glowWhite, 0.5*(1+math.Sin(t)))
	return rgba(c)
}

// BackdropColor is the dim amorphous gradient on the inside of the backdrop
// sphere.
func BackdropColor(u, v, t float64) color.RGBA {
	uu := u + math.Sin(u*10+t*1.2)*0.5
	vv := v + math.Cos(v*10+t*1.2)*0.5
	c := mix3([3]float64{}, backdropWarm, vv*0.35+0.35)
	c = mix3(c, backdropCool, uu*0.35+0.35)
	pulse := 0.5 + 0.5*math.Sin(t*0.9)
	return rgba([3]float64{c[0] * pulse, c[1] * pulse, c[2] * pulse})
}

// HeatColor maps d in [0, bound] from blue through white to red.
func HeatColor(d, bound float64) color.RGBA {
	t := 0.0
	if bound > 0 {
		t = clamp01(d / bound)
	}
	cold := [3]float64{0.2, 0.4, 1.0}
	mid := [3]float64{1, 1, 1}
	hot := [3]float64{1.0, 0.25, 0.15}
	if t < 0.5 {
		return rgba(mix3(cold, mid, t*2))
	}
	return rgba(mix3(mid, hot, (t-0.5)*2))
}

// ColorMode selects how particles are colored.
type ColorMode int

const (
	ColorGlow ColorMode = iota // Animated green/cyan/pink gradient
	ColorTint                  // Per-particle random tint
	ColorHeat                  // Distance from the origin
)

// ParticleColor returns the unfogged color of p in a swarm of n particles
// clamped to bound, at time t seconds.
func ParticleColor(p ParticleState, n int, mode ColorMode, t, bound float64) color.RGBA {
	switch mode {
	case ColorTint:
		return color.RGBA{R: p.Tint.R, G: p.Tint.G, B: p.Tint.B, A: 255}
	case ColorHeat:
		return HeatColor(p.Position.Length(), bound)
	}

	u := 0.0
	if n > 0 {
		u = float64(p.Index) / float64(n)
	}
	v := 0.5
	if bound > 0 {
		v += p.Position.Y / (2 * bound)
	}
	return GlowColor(u, v, t)
}

// FogColor is the haze particles fade into.
var FogColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Blend mixes c toward target by f in [0, 1], keeping c's alpha.
func Blend(c, target color.RGBA, f float64) color.RGBA {
	f = clamp01(f)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}
	return color.RGBA{R: lerp(c.R, target.R), G: lerp(c.G, target.G), B: lerp(c.B, target.B), A: c.A}
}

// ClearColor is the background for one frame: black hazed by the fog alpha.
func (f FogState) ClearColor() color.RGBA {
	return Blend(color.RGBA{A: 255}, FogColor, f.Alpha)
}

func mix3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func rgba(c [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(clamp01(c[0]) * 255)),
		G: uint8(math.Round(clamp01(c[1]) * 255)),
		B: uint8(math.Round(clamp01(c[2]) * 255)),
		A: 255,
	}
}
