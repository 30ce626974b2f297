// Package visualizer hosts the swarm. Each tick it samples the loudness
// source once, advances the motion update, recomputes the fog and records
// telemetry. Draw renders the result with raylib; the terminal host reads
// the same state through Particles, Fog and Camera.
package visualizer

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/murmur/audio"
	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/noise"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
)

// Render hosts.
const (
	RendererRaylib   = "raylib"
	RendererTerminal = "terminal"
)

// Options configures a visualizer run.
type Options struct {
	Seed           int64
	Headless       bool
	Renderer       string  // RendererRaylib or RendererTerminal
	LogStats       bool    // Log window stats via slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // CSV logs, config and snapshots; empty disables output
	MaxTicks       int64   // 0 = unlimited, counted from the restored tick
	Snapshot       string  // Snapshot file to resume from; empty starts fresh
}

// Visualizer holds the complete run state.
type Visualizer struct {
	cfg  *config.Config
	opts Options
	src  audio.Source

	swarm     *systems.Swarm
	fogParams systems.FogParams
	fog       systems.FogState
	camera    *camera.Camera
	particles []systems.ParticleState

	elapsed   float64
	paused    bool
	showHUD   bool
	colorMode systems.ColorMode
	selected  int

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	bookmarks     *telemetry.BookmarkDetector
	lastWindow    telemetry.WindowStats
	hasWindow     bool
	statsCallback func(telemetry.WindowStats)

	// nil when headless or on the terminal
	gfx *graphics
}

// fixedLevel hands the swarm the loudness already sampled for this tick.
type fixedLevel float64

func (l fixedLevel) Loudness() float64 { return float64(l) }

// New builds a visualizer around an acquired loudness source. The window must
// already be open unless opts is headless or uses the terminal renderer.
func New(opts Options, cfg *config.Config, src audio.Source) (*Visualizer, error) {
	if cfg == nil {
		return nil, errors.New("visualizer: nil config")
	}
	if src == nil {
		return nil, errors.New("visualizer: nil loudness source")
	}
	if opts.Renderer == "" {
		opts.Renderer = RendererRaylib
	}

	noiseSeed := cfg.Noise.Seed
	if noiseSeed == 0 {
		noiseSeed = opts.Seed
	}
	ns, err := noise.New(cfg.Noise.Kind, noiseSeed)
	if err != nil {
		return nil, fmt.Errorf("visualizer: %w", err)
	}

	swarm, err := systems.NewSwarm(systems.ParamsFromConfig(cfg.Swarm), ns, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, fmt.Errorf("visualizer: %w", err)
	}

	var elapsed float64
	if opts.Snapshot != "" {
		snap, err := telemetry.LoadSnapshot(opts.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("visualizer: %w", err)
		}
		if err := snap.Restore(swarm); err != nil {
			return nil, fmt.Errorf("visualizer: %w", err)
		}
		elapsed = snap.SimTime
		slog.Info("snapshot restored", "path", opts.Snapshot, "tick", snap.Tick)
	}

	window := opts.StatsWindowSec
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("visualizer: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("visualizer: writing config: %w", err)
	}

	v := &Visualizer{
		cfg:       cfg,
		opts:      opts,
		src:       src,
		swarm:     swarm,
		elapsed:   elapsed,
		fogParams: systems.FogParamsFromConfig(cfg.Fog),
		camera:    camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Camera),
		showHUD:   true,
		selected:  -1,
		collector: telemetry.NewCollector(window, cfg.Physics.DT),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    output,
		bookmarks: telemetry.NewBookmarkDetector(10),
	}
	v.perf.SetBudget(frameBudget(cfg.Screen.TargetFPS))
	v.fog = systems.Fog(0, v.fogParams)
	v.particles = swarm.Snapshot(v.particles)

	if !opts.Headless && opts.Renderer == RendererRaylib {
		v.gfx = newGraphics(v)
	}

	slog.Info("visualizer ready",
		"particles", swarm.Len(),
		"noise", cfg.Noise.Kind,
		"source", cfg.Audio.Source,
		"renderer", opts.Renderer,
		"headless", opts.Headless,
		"stats_window_s", window,
	)
	return v, nil
}

// Step advances one tick covering dt seconds. It does nothing while paused.
func (v *Visualizer) Step(dt float64) {
	if v.paused {
		return
	}

	v.perf.StartTick()

	v.perf.StartPhase(telemetry.PhaseAudio)
	level := fixedLevel(v.src.Loudness())

	v.perf.StartPhase(telemetry.PhaseMotion)
	v.elapsed += dt
	stats := v.swarm.Update(systems.Frame{Level: level, Time: v.elapsed})
	v.particles = v.swarm.Snapshot(v.particles)

	v.perf.StartPhase(telemetry.PhaseFog)
	v.fog = systems.Fog(stats.Loudness, v.fogParams)

	v.perf.StartPhase(telemetry.PhaseTelemetry)
	v.collector.Record(stats)
	v.flushTelemetry()

	v.perf.EndTick()

	v.camera.Update(dt)
}

// UpdateHeadless advances one fixed Physics.DT tick.
func (v *Visualizer) UpdateHeadless() {
	v.Step(v.cfg.Physics.DT)
}

// Done reports whether MaxTicks has been reached.
func (v *Visualizer) Done() bool {
	return v.opts.MaxTicks > 0 && v.Tick() >= v.opts.MaxTicks
}

// Tick returns the number of ticks applied.
func (v *Visualizer) Tick() int64 {
	return v.swarm.Tick()
}

// Elapsed returns the simulated seconds since start. It stops while paused.
func (v *Visualizer) Elapsed() float64 {
	return v.elapsed
}

// Paused reports whether ticking is suspended.
func (v *Visualizer) Paused() bool {
	return v.paused
}

// HUDVisible reports whether the HUD is shown.
func (v *Visualizer) HUDVisible() bool {
	return v.showHUD
}

// ColorMode returns the active particle coloring.
func (v *Visualizer) ColorMode() systems.ColorMode {
	return v.colorMode
}

// Particles returns the state after the latest tick. The slice is reused by
// the next tick.
func (v *Visualizer) Particles() []systems.ParticleState {
	return v.particles
}

// Fog returns the fog computed by the latest tick.
func (v *Visualizer) Fog() systems.FogState {
	return v.fog
}

// Camera returns the orbit camera.
func (v *Visualizer) Camera() *camera.Camera {
	return v.camera
}

// Swarm returns the particle swarm.
func (v *Visualizer) Swarm() *systems.Swarm {
	return v.swarm
}

// LastWindow returns the most recently flushed stats window.
func (v *Visualizer) LastWindow() (telemetry.WindowStats, bool) {
	return v.lastWindow, v.hasWindow
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (v *Visualizer) SetStatsCallback(fn func(telemetry.WindowStats)) {
	v.statsCallback = fn
}

// SetGains changes the motion gains for later ticks.
func (v *Visualizer) SetGains(audioGain, radiusGain float64) error {
	return v.swarm.SetGains(audioGain, radiusGain)
}

// Unload closes telemetry output. It does not close the loudness source,
// which the caller owns.
func (v *Visualizer) Unload() {
	v.gfx = nil
	if err := v.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// frameBudget is one frame at fps, or zero when fps is unset.
func frameBudget(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
