package systems

import "github.com/pthm-cable/murmur/config"

// FogParams shapes the loudness-driven fog.
type FogParams struct {
	AlphaGain float64
	Near      float64
	BaseFar   float64
	FarGain   float64
}

// FogParamsFromConfig maps the fog config section.
func FogParamsFromConfig(c config.FogConfig) FogParams {
	return FogParams{
		AlphaGain: c.AlphaGain,
		Near:      c.Near,
		BaseFar:   c.BaseFar,
		FarGain:   c.FarGain,
	}
}

// FogState is the linear fog a render host applies for one frame.
type FogState struct {
	Alpha float64 // White fog opacity
	Near  float64
	Far   float64
}

// Fog computes the linear fog for loudness l. Louder pushes the far plane out
// and thickens the white haze.
func Fog(l float64, p FogParams) FogState {
	l = sanitizeLoudness(l)
	return FogState{
		Alpha: l * p.AlphaGain,
		Near:  p.Near,
		Far:   p.BaseFar + l*p.FarGain,
	}
}

// Factor returns the fog blend in [0, 1] for a point at distance d.
func (f FogState) Factor(d float64) float64 {
	if f.Far <= f.Near {
		return f.Alpha
	}
	t := (d - f.Near) / (f.Far - f.Near)
	return clamp01(t) * f.Alpha
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
