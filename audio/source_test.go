package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/murmur/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestKindsRegistered(t *testing.T) {
	kinds := Kinds()
	found := map[string]bool{}
	for _, k := range kinds {
		found[k] = true
	}
	for _, want := range []string{"file", "tone"} {
		if !found[want] {
			t.Errorf("kind %q not registered (have %v)", want, kinds)
		}
	}
}

func TestAcquireFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"unknown kind", func(c *config.Config) { c.Audio.Source = "carrier-pigeon" }},
		{"file without path", func(c *config.Config) { c.Audio.Source = "file"; c.Audio.File = "" }},
		{"missing file", func(c *config.Config) {
			c.Audio.Source = "file"
			c.Audio.File = filepath.Join(t.TempDir(), "absent.wav")
		}},
		{"unsupported format", func(c *config.Config) {
			c.Audio.Source = "file"
			path := filepath.Join(t.TempDir(), "clip.ogg")
			if err := os.WriteFile(path, []byte("OggS"), 0644); err != nil {
				t.Fatal(err)
			}
			c.Audio.File = path
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			src, err := Acquire(context.Background(), cfg)
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("Acquire error = %v, want ErrUnavailable", err)
			}
			if src != nil {
				t.Error("failed acquisition returned a source")
			}
		})
	}
}

func TestAcquireCancelledContext(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Acquire(ctx, cfg); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Acquire with cancelled ctx = %v, want ErrUnavailable", err)
	}
}

func TestAcquireToneProducesLoudness(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audio.Source = "tone"
	cfg.Audio.ToneLFO = 0

	src, err := Acquire(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer src.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if src.Loudness() > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("tone source never reported loudness")
}

func TestAcquireFileCloses(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audio.Source = "file"
	cfg.Audio.File = writeTestWAV(t, 0.5)
	cfg.Audio.Loop = true

	src, err := Acquire(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
