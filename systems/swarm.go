// Package systems contains the ECS systems that drive the particle swarm.
package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/noise"
)

// MotionParams holds the fixed constants of the swarm motion model.
type MotionParams struct {
	Count         int
	MaxPosition   float64
	InitialScale  float64
	InitialStep   float64
	InitialRadius float64
	Frequency     float64
	AudioGain     float64
	RadiusGain    float64
	AxisOffsets   [3]float64
}

// ParamsFromConfig maps the swarm config section onto motion params.
func ParamsFromConfig(c config.SwarmConfig) MotionParams {
	return MotionParams{
		Count:         c.Count,
		MaxPosition:   c.MaxPosition,
		InitialScale:  c.InitialScale,
		InitialStep:   c.InitialStep,
		InitialRadius: c.InitialRadius,
		Frequency:     c.Frequency,
		AudioGain:     c.AudioGain,
		RadiusGain:    c.RadiusGain,
		AxisOffsets:   c.AxisOffsets,
	}
}

// Validate rejects params that would break the position or radius bounds.
func (p MotionParams) Validate() error {
	var errs []error
	if p.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be positive, got %d", p.Count))
	}
	if !(p.MaxPosition > 0) || math.IsInf(p.MaxPosition, 1) {
		errs = append(errs, fmt.Errorf("max position must be positive and finite, got %g", p.MaxPosition))
	}
	// negated comparisons also catch NaN
	if !(p.AudioGain >= 0) || !(p.RadiusGain >= 0) {
		errs = append(errs, fmt.Errorf("gains must be >= 0, got audio=%g radius=%g", p.AudioGain, p.RadiusGain))
	}
	if !(p.InitialRadius >= 0) {
		errs = append(errs, fmt.Errorf("initial radius must be >= 0, got %g", p.InitialRadius))
	}
	return errors.Join(errs...)
}

// LevelReader exposes the latest loudness in [0, 1].
type LevelReader interface {
	Loudness() float64
}

// Frame is the per-tick input to the swarm update.
type Frame struct {
	Level LevelReader // Read exactly once per tick
	Time  float64     // Seconds since start, monotonic
}

// UpdateStats summarizes one tick.
type UpdateStats struct {
	Tick      int64
	Loudness  float64 // Sanitized loudness used for the tick
	Influence float64 // Loudness * AudioGain
	Radius    float64 // Radius assigned to every particle
	Clamped   int     // Axis values that hit the bound this tick
}

// ParticleState is the outbound view of one particle.
type ParticleState struct {
	Index    int
	Position components.Position
	Radius   float64
	Tint     components.Tint
}

// Swarm owns the particle set and applies the audio/noise motion update.
type Swarm struct {
	store particleStore

	params MotionParams
	noise  noise.Source
	tick   int64
	last   UpdateStats
}

// NewSwarm creates params.Count particles placed by the noise source.
// Particle i starts at InitialScale * Noise2D(i*InitialStep + offset, 0) per axis.
// rng only picks display tints; placement depends on src alone.
func NewSwarm(params MotionParams, src noise.Source, rng *rand.Rand) (*Swarm, error) {
	if src == nil {
		return nil, errors.New("swarm: nil noise source")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("swarm: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	s := &Swarm{
		store:  newStore(params.Count),
		params: params,
		noise:  src,
	}

	for i := 0; i < params.Count; i++ {
		s.store.add(
			components.Particle{Index: i},
			s.initialPosition(i),
			components.Radius{Value: params.InitialRadius},
			randomTint(rng),
		)
	}

	return s, nil
}

func (s *Swarm) initialPosition(i int) components.Position {
	var pos components.Position
	x := float64(i) * s.params.InitialStep
	for axis := 0; axis < 3; axis++ {
		v := s.params.InitialScale * s.noise.Noise2D(x+s.params.AxisOffsets[axis], 0)
		if math.IsNaN(v) {
			v = 0
		}
		pos.SetAxis(axis, clampAxis(v, s.params.MaxPosition))
	}
	return pos
}

// randomTint mirrors a random 24-bit hex color.
func randomTint(rng *rand.Rand) components.Tint {
	c := rng.Intn(0xFFFFFF)
	return components.Tint{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
}

// Update advances every particle by one tick.
func (s *Swarm) Update(frame Frame) UpdateStats {
	var loudness float64
	if frame.Level != nil {
		loudness = sanitizeLoudness(frame.Level.Loudness())
	}

	influence := loudness * s.params.AudioGain
	radius := s.params.RadiusGain * influence
	bound := s.params.MaxPosition
	clamped := 0

	s.store.each(func(idx components.Particle, pos *components.Position, r *components.Radius) {
		x := float64(idx.Index) * s.params.Frequency
		for axis := 0; axis < 3; axis++ {
			cur := pos.Axis(axis)
			n := s.noise.Noise2D(x+s.params.AxisOffsets[axis], frame.Time)
			next := n*influence + cur
			if math.IsNaN(next) {
				// NaN from a misbehaving source leaves the particle in place
				next = cur
			}
			c := clampAxis(next, bound)
			if c != next {
				clamped++
			}
			pos.SetAxis(axis, c)
		}
		r.Value = radius
	})

	s.tick++
	s.last = UpdateStats{
		Tick:      s.tick,
		Loudness:  loudness,
		Influence: influence,
		Radius:    radius,
		Clamped:   clamped,
	}
	return s.last
}

// SetGains changes the audio and radius gains used by later ticks.
func (s *Swarm) SetGains(audioGain, radiusGain float64) error {
	if !(audioGain >= 0) || !(radiusGain >= 0) {
		return fmt.Errorf("swarm: gains must be >= 0, got audio=%g radius=%g", audioGain, radiusGain)
	}
	s.params.AudioGain = audioGain
	s.params.RadiusGain = radiusGain
	return nil
}

// Params returns the current motion params.
func (s *Swarm) Params() MotionParams {
	return s.params
}

// Len returns the particle count.
func (s *Swarm) Len() int {
	return s.store.count()
}

// Tick returns the number of updates applied so far.
func (s *Swarm) Tick() int64 {
	return s.tick
}

// LastStats returns the stats of the most recent update.
func (s *Swarm) LastStats() UpdateStats {
	return s.last
}

// Particle returns the state of particle i.
func (s *Swarm) Particle(i int) (ParticleState, bool) {
	if i < 0 || i >= s.store.count() {
		return ParticleState{}, false
	}
	return s.store.at(i), true
}

// Each calls fn for every particle in index order.
func (s *Swarm) Each(fn func(ParticleState)) {
	for i, n := 0, s.store.count(); i < n; i++ {
		fn(s.store.at(i))
	}
}

// Snapshot fills dst with all particle states in index order, reusing its storage.
func (s *Swarm) Snapshot(dst []ParticleState) []ParticleState {
	dst = dst[:0]
	for i, n := 0, s.store.count(); i < n; i++ {
		dst = append(dst, s.store.at(i))
	}
	return dst
}

// Restore overwrites positions and radii from saved states and resumes the
// tick counter at tick. States are matched by Index and must cover every
// particle exactly once. Positions are clamped to the current bound.
// Nothing changes when an error is returned.
func (s *Swarm) Restore(tick int64, states []ParticleState) error {
	n := s.store.count()
	if len(states) != n {
		return fmt.Errorf("swarm: restore %d particles into swarm of %d", len(states), n)
	}
	if tick < 0 {
		return fmt.Errorf("swarm: restore negative tick %d", tick)
	}
	seen := make([]bool, n)
	for _, st := range states {
		if st.Index < 0 || st.Index >= n {
			return fmt.Errorf("swarm: restore index %d out of range", st.Index)
		}
		if seen[st.Index] {
			return fmt.Errorf("swarm: restore index %d repeated", st.Index)
		}
		seen[st.Index] = true
		for axis := 0; axis < 3; axis++ {
			if v := st.Position.Axis(axis); math.IsNaN(v) {
				return fmt.Errorf("swarm: restore particle %d has NaN position", st.Index)
			}
		}
		if !(st.Radius >= 0) || math.IsInf(st.Radius, 1) {
			return fmt.Errorf("swarm: restore particle %d has radius %g", st.Index, st.Radius)
		}
	}

	bound := s.params.MaxPosition
	for _, st := range states {
		var pos components.Position
		for axis := 0; axis < 3; axis++ {
			pos.SetAxis(axis, clampAxis(st.Position.Axis(axis), bound))
		}
		s.store.set(st.Index, pos, components.Radius{Value: st.Radius})
	}
	s.tick = tick
	s.last = UpdateStats{Tick: tick}
	return nil
}
