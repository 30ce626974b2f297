package audio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pthm-cable/murmur/config"
)

// ErrUnavailable marks a failed acquisition. The visualization must not
// start when Acquire returns it.
var ErrUnavailable = errors.New("loudness source unavailable")

// Source is a ready loudness sampler.
type Source interface {
	// Loudness returns the latest normalized loudness in [0, 1].
	Loudness() float64
	// Close stops sampling and releases decoders, devices and sockets.
	Close() error
}

// OpenFunc acquires a source. It blocks until the source is ready or fails.
type OpenFunc func(ctx context.Context, cfg *config.Config) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]OpenFunc)
)

// Register makes a source kind available to Acquire. Packages providing
// sources call it from init.
func Register(kind string, open OpenFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if open == nil {
		panic("audio: Register open func is nil")
	}
	if _, dup := registry[kind]; dup {
		panic("audio: Register called twice for source " + kind)
	}
	registry[kind] = open
}

// Kinds lists the registered source kinds.
func Kinds() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Acquire opens the source named by cfg.Audio.Source. It returns either a
// ready source or an error wrapping ErrUnavailable.
func Acquire(ctx context.Context, cfg *config.Config) (Source, error) {
	kind := cfg.Audio.Source

	registryMu.RLock()
	open, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown source %q (registered: %v)", ErrUnavailable, kind, Kinds())
	}

	src, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, kind, err)
	}
	return src, nil
}

func init() {
	Register("file", openFile)
	Register("tone", openTone)
}
