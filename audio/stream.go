package audio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
)

// StreamSource samples a beep streamer on its own goroutine.
type StreamSource struct {
	level  Level
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	closer io.Closer

	mu  sync.Mutex
	err error
}

// startStream runs p until Close. The sampler outlives ctx's deadline; only
// its values carry over.
func startStream(ctx context.Context, name string, p *pump, closer io.Closer) *StreamSource {
	s := &StreamSource{
		name:   name,
		done:   make(chan struct{}),
		closer: closer,
	}
	p.level = &s.level

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	go func() {
		defer close(s.done)
		err := p.run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("audio stream stopped", "source", name, "error", err)
			s.setErr(err)
			return
		}
		slog.Info("audio stream finished", "source", name)
	}()

	return s
}

// Stopped reports, without blocking, whether src has stopped sampling on
// its own, and the error that stopped it. A drained stream stops with a nil
// error. Sources that never stop before Close report false.
func Stopped(src Source) (bool, error) {
	st, ok := src.(interface {
		Done() <-chan struct{}
		Err() error
	})
	if !ok {
		return false, nil
	}
	select {
	case <-st.Done():
		return true, st.Err()
	default:
		return false, nil
	}
}

// Loudness returns the latest normalized loudness.
func (s *StreamSource) Loudness() float64 {
	return s.level.Loudness()
}

// Err returns the error that stopped sampling, if any.
func (s *StreamSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *StreamSource) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Done is closed when sampling stops.
func (s *StreamSource) Done() <-chan struct{} {
	return s.done
}

// Close stops sampling and releases the underlying stream.
func (s *StreamSource) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// loopStreamer rewinds a seekable stream at its end.
type loopStreamer struct {
	s beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.s.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			continue
		}
		if l.s.Err() != nil || l.s.Len() == 0 {
			return filled, filled > 0
		}
		if err := l.s.Seek(0); err != nil {
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.s.Err()
}
