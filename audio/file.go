package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/pthm-cable/murmur/config"
)

func openFile(ctx context.Context, cfg *config.Config) (Source, error) {
	return OpenFile(ctx, cfg.Audio)
}

// OpenFile decodes a WAV or MP3 file and samples its loudness in real time.
// With c.Playback the file is also played on the default output device and
// analyzed inline as the speaker consumes it.
func OpenFile(ctx context.Context, c config.AudioConfig) (*StreamSource, error) {
	if c.File == "" {
		return nil, fmt.Errorf("audio.file is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	streamer, format, err := decodeFile(c.File)
	if err != nil {
		return nil, err
	}

	var stream beep.Streamer = streamer
	if c.Loop {
		stream = &loopStreamer{s: streamer}
	}

	analyzer := NewAnalyzer(AnalyzerParamsFromConfig(c))
	p := newPump(stream, format.SampleRate, analyzer, nil)
	name := "file:" + filepath.Base(c.File)

	if !c.Playback {
		return startStream(ctx, name, p, streamer), nil
	}
	return startPlayback(name, p, format, streamer)
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("opening audio file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return streamer, format, nil
}

// startPlayback hands the tapped stream to the speaker, which then drives
// the analysis cadence.
func startPlayback(name string, p *pump, format beep.Format, streamer beep.StreamSeekCloser) (*StreamSource, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	s := &StreamSource{
		name:   name,
		done:   make(chan struct{}),
		closer: playbackCloser{streamer},
	}
	p.level = &s.level

	speaker.Play(beep.Seq(p.tap(), beep.Callback(func() {
		close(s.done)
	})))
	return s, nil
}

// playbackCloser detaches the speaker before releasing the decoder.
type playbackCloser struct {
	streamer beep.StreamSeekCloser
}

func (c playbackCloser) Close() error {
	speaker.Clear()
	speaker.Close()
	return c.streamer.Close()
}
