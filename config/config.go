// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Noise     NoiseConfig     `yaml:"noise"`
	Audio     AudioConfig     `yaml:"audio"`
	Remote    RemoteConfig    `yaml:"remote"`
	Fog       FogConfig       `yaml:"fog"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds tick timing for headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per headless tick
}

// SwarmConfig holds particle swarm parameters.
type SwarmConfig struct {
	Count         int        `yaml:"count"`          // Particle count, fixed for the session
	MaxPosition   float64    `yaml:"max_position"`   // Symmetric clamp bound per axis
	InitialScale  float64    `yaml:"initial_scale"`  // Initial placement = scale * noise
	InitialStep   float64    `yaml:"initial_step"`   // Noise input step per index at init
	InitialRadius float64    `yaml:"initial_radius"` // Radius before the first tick
	Frequency     float64    `yaml:"frequency"`      // Noise input step per index per tick
	AudioGain     float64    `yaml:"audio_gain"`     // audioInfluence = loudness * this
	RadiusGain    float64    `yaml:"radius_gain"`    // radius = this * audioInfluence
	AxisOffsets   [3]float64 `yaml:"axis_offsets"`   // Noise input offset per axis (x, y, z)
}

// NoiseConfig selects the coherent noise generator.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // simplex | perlin
	Seed int64  `yaml:"seed"` // 0 = derive from run seed
}

// AudioConfig holds loudness sampler parameters.
type AudioConfig struct {
	Source     string  `yaml:"source"`      // file | tone | remote
	File       string  `yaml:"file"`        // Path for the file source (wav, mp3)
	Loop       bool    `yaml:"loop"`        // Restart the file at EOF
	Playback   bool    `yaml:"playback"`    // Play the file through the speaker while analyzing
	SampleRate int     `yaml:"sample_rate"` // Analysis sample rate for generated sources
	FFTSize    int     `yaml:"fft_size"`    // Analyzer window size, power of two
	Smoothing  float64 `yaml:"smoothing"`   // Analyzer smoothing time constant [0,1)
	MinDB      float64 `yaml:"min_db"`      // Magnitude mapped to byte 0
	MaxDB      float64 `yaml:"max_db"`      // Magnitude mapped to byte 255
	ToneFreq   float64 `yaml:"tone_freq"`   // Tone source carrier frequency in Hz
	ToneLFO    float64 `yaml:"tone_lfo"`    // Tone source amplitude modulation in Hz
}

// RemoteConfig holds the WebRTC microphone ingest parameters.
type RemoteConfig struct {
	Listen      string   `yaml:"listen"`       // HTTP address for SDP negotiation
	WaitTimeout float64  `yaml:"wait_timeout"` // Seconds to wait for the first audio track
	ICEServers  []string `yaml:"ice_servers"`  // STUN/TURN URLs
}

// FogConfig holds loudness-driven fog parameters.
type FogConfig struct {
	AlphaGain float64 `yaml:"alpha_gain"` // alpha = loudness * this
	Near      float64 `yaml:"near"`
	BaseFar   float64 `yaml:"base_far"` // far = base_far + loudness * far_gain
	FarGain   float64 `yaml:"far_gain"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	Yaw         float64 `yaml:"yaw"`   // Degrees
	Pitch       float64 `yaml:"pitch"` // Degrees
	FOV         float64 `yaml:"fov"`   // Vertical field of view in degrees
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	OrbitSpeed  float64 `yaml:"orbit_speed"`  // Degrees per second of automatic orbit (0 = static)
	BackdropRad float64 `yaml:"backdrop_rad"` // Backdrop sphere radius
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxRadius     float64 // Radius at full loudness: Swarm.RadiusGain * Swarm.AudioGain
	FrameDuration float64 // Audio.FFTSize / Audio.SampleRate in seconds
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate reports every setting that cannot drive a swarm, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Swarm.Count <= 0 {
		errs = append(errs, fmt.Errorf("swarm.count must be positive, got %d", c.Swarm.Count))
	}
	if mp := c.Swarm.MaxPosition; !(mp > 0) || math.IsInf(mp, 1) {
		errs = append(errs, fmt.Errorf("swarm.max_position must be positive and finite, got %g", mp))
	}
	// negated comparisons also reject NaN
	if !(c.Swarm.AudioGain >= 0) {
		errs = append(errs, fmt.Errorf("swarm.audio_gain must be >= 0, got %g", c.Swarm.AudioGain))
	}
	if !(c.Swarm.RadiusGain >= 0) {
		errs = append(errs, fmt.Errorf("swarm.radius_gain must be >= 0, got %g", c.Swarm.RadiusGain))
	}
	if !(c.Swarm.InitialRadius >= 0) {
		errs = append(errs, fmt.Errorf("swarm.initial_radius must be >= 0, got %g", c.Swarm.InitialRadius))
	}
	if n := c.Audio.FFTSize; n < 32 || n&(n-1) != 0 {
		errs = append(errs, fmt.Errorf("audio.fft_size must be a power of two >= 32, got %d", n))
	}
	if c.Audio.Smoothing < 0 || c.Audio.Smoothing >= 1 {
		errs = append(errs, fmt.Errorf("audio.smoothing must be in [0,1), got %g", c.Audio.Smoothing))
	}
	if c.Audio.MaxDB <= c.Audio.MinDB {
		errs = append(errs, fmt.Errorf("audio.max_db (%g) must exceed audio.min_db (%g)", c.Audio.MaxDB, c.Audio.MinDB))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %g", c.Physics.DT))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxRadius = c.Swarm.RadiusGain * c.Swarm.AudioGain
	if c.Audio.SampleRate > 0 {
		c.Derived.FrameDuration = float64(c.Audio.FFTSize) / float64(c.Audio.SampleRate)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
