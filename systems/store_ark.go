//go:build !js

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/murmur/components"
)

// newStore builds the storage used by NewSwarm.
var newStore = func(capacity int) particleStore {
	return newArkStore(capacity)
}

// arkStore keeps particles as entities in an ark world.
type arkStore struct {
	world *ecs.World

	mapper *ecs.Map4[
		components.Particle,
		components.Position,
		components.Radius,
		components.Tint,
	]
	filter *ecs.Filter3[
		components.Particle,
		components.Position,
		components.Radius,
	]

	// entities[i] holds particle i, for index-ordered readout
	entities []ecs.Entity
}

func newArkStore(capacity int) *arkStore {
	world := ecs.NewWorld()
	return &arkStore{
		world: world,
		mapper: ecs.NewMap4[
			components.Particle,
			components.Position,
			components.Radius,
			components.Tint,
		](world),
		filter: ecs.NewFilter3[
			components.Particle,
			components.Position,
			components.Radius,
		](world),
		entities: make([]ecs.Entity, 0, capacity),
	}
}

func (s *arkStore) add(idx components.Particle, pos components.Position, r components.Radius, tint components.Tint) {
	s.entities = append(s.entities, s.mapper.NewEntity(&idx, &pos, &r, &tint))
}

func (s *arkStore) count() int {
	return len(s.entities)
}

func (s *arkStore) each(fn func(idx components.Particle, pos *components.Position, r *components.Radius)) {
	query := s.filter.Query()
	for query.Next() {
		idx, pos, r := query.Get()
		fn(*idx, pos, r)
	}
}

func (s *arkStore) at(i int) ParticleState {
	idx, pos, r, tint := s.mapper.Get(s.entities[i])
	return ParticleState{
		Index:    idx.Index,
		Position: *pos,
		Radius:   r.Value,
		Tint:     *tint,
	}
}

func (s *arkStore) set(i int, pos components.Position, r components.Radius) {
	_, p, rad, _ := s.mapper.Get(s.entities[i])
	*p = pos
	*rad = r
}
