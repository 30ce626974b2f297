package systems

import "github.com/pthm-cable/murmur/components"

// particleStore holds the swarm's components, addressable by particle index.
type particleStore interface {
	add(idx components.Particle, pos components.Position, r components.Radius, tint components.Tint)
	count() int
	// each visits every particle for the motion update. Order is unspecified.
	each(fn func(idx components.Particle, pos *components.Position, r *components.Radius))
	at(i int) ParticleState
	set(i int, pos components.Position, r components.Radius)
}

type sliceParticle struct {
	idx  components.Particle
	pos  components.Position
	r    components.Radius
	tint components.Tint
}

// sliceStore keeps particles in a flat slice. It backs the swarm where
// the ECS world cannot be built.
type sliceStore struct {
	items []sliceParticle
}

func newSliceStore(capacity int) *sliceStore {
	return &sliceStore{items: make([]sliceParticle, 0, capacity)}
}

func (s *sliceStore) add(idx components.Particle, pos components.Position, r components.Radius, tint components.Tint) {
	s.items = append(s.items, sliceParticle{idx: idx, pos: pos, r: r, tint: tint})
}

func (s *sliceStore) count() int {
	return len(s.items)
}

func (s *sliceStore) each(fn func(idx components.Particle, pos *components.Position, r *components.Radius)) {
	for i := range s.items {
		p := &s.items[i]
		fn(p.idx, &p.pos, &p.r)
	}
}

func (s *sliceStore) at(i int) ParticleState {
	p := s.items[i]
	return ParticleState{
		Index:    p.idx.Index,
		Position: p.pos,
		Radius:   p.r.Value,
		Tint:     p.tint,
	}
}

func (s *sliceStore) set(i int, pos components.Position, r components.Radius) {
	s.items[i].pos = pos
	s.items[i].r = r
}
