package visualizer

import (
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/ui"
)

// inspectorData gathers what the inspector panel shows for p.
func (v *Visualizer) inspectorData(p systems.ParticleState) ui.InspectorData {
	params := v.swarm.Params()
	pos := vec(p)

	var in [3]float64
	x := float64(p.Index) * params.Frequency
	for axis := range in {
		in[axis] = x + params.AxisOffsets[axis]
	}

	return ui.InspectorData{
		Particle:   p,
		Distance:   p.Position.Length(),
		Depth:      v.camera.Eye().Sub(pos).Len(),
		Bound:      params.MaxPosition,
		NoiseInput: in,
	}
}
