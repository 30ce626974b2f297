package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Swarm.Count != 2500 {
		t.Errorf("swarm.count = %d, want 2500", cfg.Swarm.Count)
	}
	if cfg.Swarm.MaxPosition != 800 {
		t.Errorf("swarm.max_position = %v, want 800", cfg.Swarm.MaxPosition)
	}
	if cfg.Swarm.AudioGain != 5.0 || cfg.Swarm.RadiusGain != 0.4 {
		t.Errorf("gains = (%v, %v), want (5, 0.4)", cfg.Swarm.AudioGain, cfg.Swarm.RadiusGain)
	}
	if cfg.Swarm.AxisOffsets != [3]float64{0, 1000, 2000} {
		t.Errorf("axis_offsets = %v", cfg.Swarm.AxisOffsets)
	}
	if cfg.Audio.FFTSize != 256 {
		t.Errorf("audio.fft_size = %d, want 256", cfg.Audio.FFTSize)
	}
	if cfg.Derived.MaxRadius != 2.0 {
		t.Errorf("derived max radius = %v, want 2.0", cfg.Derived.MaxRadius)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "swarm:\n  count: 3\n  audio_gain: 2.5\naudio:\n  source: file\n  file: song.wav\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Swarm.Count != 3 {
		t.Errorf("count = %d, want 3", cfg.Swarm.Count)
	}
	if cfg.Swarm.AudioGain != 2.5 {
		t.Errorf("audio_gain = %v, want 2.5", cfg.Swarm.AudioGain)
	}
	// Untouched fields keep defaults
	if cfg.Swarm.MaxPosition != 800 {
		t.Errorf("max_position = %v, want default 800", cfg.Swarm.MaxPosition)
	}
	if cfg.Audio.Source != "file" || cfg.Audio.File != "song.wav" {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if math.Abs(cfg.Derived.MaxRadius-1.0) > 1e-9 {
		t.Errorf("derived max radius = %v", cfg.Derived.MaxRadius)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero count", func(c *Config) { c.Swarm.Count = 0 }, "swarm.count"},
		{"negative bound", func(c *Config) { c.Swarm.MaxPosition = -1 }, "swarm.max_position"},
		{"negative audio gain", func(c *Config) { c.Swarm.AudioGain = -5 }, "swarm.audio_gain"},
		{"negative radius gain", func(c *Config) { c.Swarm.RadiusGain = -0.4 }, "swarm.radius_gain"},
		{"fft not power of two", func(c *Config) { c.Audio.FFTSize = 300 }, "audio.fft_size"},
		{"smoothing one", func(c *Config) { c.Audio.Smoothing = 1 }, "audio.smoothing"},
		{"inverted db range", func(c *Config) { c.Audio.MinDB = -10 }, "audio.max_db"},
		{"NaN bound", func(c *Config) { c.Swarm.MaxPosition = math.NaN() }, "swarm.max_position"},
		{"infinite bound", func(c *Config) { c.Swarm.MaxPosition = math.Inf(1) }, "swarm.max_position"},
		{"NaN audio gain", func(c *Config) { c.Swarm.AudioGain = math.NaN() }, "swarm.audio_gain"},
		{"NaN radius gain", func(c *Config) { c.Swarm.RadiusGain = math.NaN() }, "swarm.radius_gain"},
		{"NaN initial radius", func(c *Config) { c.Swarm.InitialRadius = math.NaN() }, "swarm.initial_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEverySetting(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.Count = 0
	cfg.Audio.FFTSize = 300
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"swarm.count", "audio.fft_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, missing %q", err, want)
		}
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"NaN bound", "swarm:\n  max_position: .nan\n", "swarm.max_position"},
		{"infinite bound", "swarm:\n  max_position: .inf\n", "swarm.max_position"},
		{"NaN radius gain", "swarm:\n  radius_gain: .nan\n", "swarm.radius_gain"},
		{"NaN audio gain", "swarm:\n  audio_gain: .nan\n", "swarm.audio_gain"},
		{"NaN initial radius", "swarm:\n  initial_radius: .nan\n", "swarm.initial_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.Count = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if loaded.Swarm.Count != 42 {
		t.Errorf("count = %d, want 42", loaded.Swarm.Count)
	}
}
