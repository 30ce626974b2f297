//go:build js
// +build js

package web

import (
	"fmt"
	"math/rand"

	"github.com/gopherjs/gopherjs/js"

	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/noise"
	"github.com/pthm-cable/murmur/systems"
)

// Scene binds a swarm to A-Frame sphere entities.
type Scene struct {
	cfg      *config.Config
	scene    *js.Object
	spheres  []*js.Object
	swarm    *systems.Swarm
	fog      systems.FogParams
	mic      *Mic
	snapshot []systems.ParticleState

	start   float64
	started bool
	frameID int
}

// NewScene creates one a-sphere per particle under the document's a-scene.
func NewScene(cfg *config.Config, seed int64) (*Scene, error) {
	doc := js.Global.Get("document")
	root := doc.Call("querySelector", "a-scene")
	if root == nil || root == js.Undefined {
		return nil, fmt.Errorf("web: no a-scene element")
	}

	noiseSeed := cfg.Noise.Seed
	if noiseSeed == 0 {
		noiseSeed = seed
	}
	src, err := noise.New(cfg.Noise.Kind, noiseSeed)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	swarm, err := systems.NewSwarm(systems.ParamsFromConfig(cfg.Swarm), src, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	s := &Scene{
		cfg:   cfg,
		scene: root,
		swarm: swarm,
		fog:   systems.FogParamsFromConfig(cfg.Fog),
	}

	group := doc.Call("createElement", "a-entity")
	group.Call("setAttribute", "id", "particleSystem")
	root.Call("appendChild", group)

	s.snapshot = swarm.Snapshot(s.snapshot)
	s.spheres = make([]*js.Object, len(s.snapshot))
	for i, p := range s.snapshot {
		sphere := doc.Call("createElement", "a-sphere")
		sphere.Call("setAttribute", "radius", p.Radius)
		sphere.Call("setAttribute", "color", hexColor(p))
		sphere.Call("setAttribute", "position", PositionAttr(p))
		group.Call("appendChild", sphere)
		s.spheres[i] = sphere
	}

	if r := cfg.Camera.BackdropRad; r > 0 {
		backdrop := doc.Call("createElement", "a-sphere")
		backdrop.Call("setAttribute", "id", "backdrop")
		backdrop.Call("setAttribute", "radius", r)
		backdrop.Call("setAttribute", "material", "side: back; color: #221133")
		root.Call("appendChild", backdrop)
	}

	return s, nil
}

// Start attaches the microphone and begins the animation loop.
func (s *Scene) Start(mic *Mic) {
	s.mic = mic
	s.frameID = js.Global.Call("requestAnimationFrame", s.frame).Int()
}

// Stop cancels the pending animation frame.
func (s *Scene) Stop() {
	js.Global.Call("cancelAnimationFrame", s.frameID)
}

func (s *Scene) frame(nowMs float64) {
	s.frameID = js.Global.Call("requestAnimationFrame", s.frame).Int()

	if !s.started {
		s.start = nowMs
		s.started = true
	}
	t := (nowMs - s.start) / 1000

	s.mic.Sample()
	stats := s.swarm.Update(systems.Frame{Level: s.mic, Time: t})
	s.scene.Call("setAttribute", "fog", FogAttr(systems.Fog(stats.Loudness, s.fog)))

	s.snapshot = s.swarm.Snapshot(s.snapshot)
	for i, p := range s.snapshot {
		s.spheres[i].Call("setAttribute", "radius", p.Radius)
		s.spheres[i].Call("setAttribute", "position", PositionAttr(p))
	}
}

func hexColor(p systems.ParticleState) string {
	return fmt.Sprintf("#%02x%02x%02x", p.Tint.R, p.Tint.G, p.Tint.B)
}
