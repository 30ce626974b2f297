// Package remote ingests a browser microphone over WebRTC and reports its
// loudness. Importing it registers the "remote" audio source.
//
// The source serves a small page at "/" that captures the microphone and
// posts an SDP offer to "/offer". The answer is returned once ICE gathering
// completes. Incoming Opus packets are decoded to PCM and fed through the
// same analyzer the local sources use.
package remote

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"
	"gopkg.in/hraban/opus.v2"

	"github.com/pthm-cable/murmur/audio"
	"github.com/pthm-cable/murmur/config"
)

const (
	sampleRate = 48000
	channels   = 1
	// maxFrame holds the longest Opus frame (120 ms) at 48 kHz.
	maxFrame = sampleRate * 120 / 1000
)

//go:embed mic.html
var micPage []byte

// Source is a WebRTC microphone loudness source.
type Source struct {
	level    audio.Level
	rtc      webrtc.Configuration
	analyzer *audio.Analyzer

	mu     sync.Mutex // guards analyzer, peers, closed
	peers  []*webrtc.PeerConnection
	closed bool

	ready     chan struct{}
	readyOnce sync.Once
	tracks    sync.WaitGroup

	server *http.Server
	serve  chan error
}

// New creates a source that has not started listening.
func New(a config.AudioConfig, r config.RemoteConfig) *Source {
	var ice []webrtc.ICEServer
	if len(r.ICEServers) > 0 {
		ice = []webrtc.ICEServer{{URLs: r.ICEServers}}
	}
	return &Source{
		rtc:      webrtc.Configuration{ICEServers: ice},
		analyzer: audio.NewAnalyzer(audio.AnalyzerParamsFromConfig(a)),
		ready:    make(chan struct{}),
	}
}

// Handler returns the HTTP handler serving the capture page and SDP endpoint.
func (s *Source) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/offer", s.serveOffer)
	return mux
}

// Start listens on addr and serves Handler in the background. It returns the
// bound address.
func (s *Source) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.serve = make(chan error, 1)
	go func() {
		err := s.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.serve <- err
	}()
	return ln.Addr(), nil
}

// Ready is closed when the first audio frame has been decoded.
func (s *Source) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until audio arrives or ctx is done.
func (s *Source) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for microphone: %w", ctx.Err())
	}
}

// Loudness returns the latest normalized loudness.
func (s *Source) Loudness() float64 {
	return s.level.Loudness()
}

// PeerCount returns the number of connected browsers.
func (s *Source) PeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Close shuts down the HTTP server and every peer connection.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	peers := s.peers
	s.peers = nil
	s.mu.Unlock()

	var errs []error
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, s.server.Shutdown(ctx))
		cancel()
		errs = append(errs, <-s.serve)
	}
	for _, pc := range peers {
		errs = append(errs, pc.Close())
	}
	s.tracks.Wait()
	s.level.Store(0)
	return errors.Join(errs...)
}

// beginTrack registers a track reader with Close. It reports false once
// Close has started, so no reader starts after Close waits.
func (s *Source) beginTrack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.tracks.Add(1)
	return true
}

func (s *Source) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ice, err := json.Marshal(s.rtc.ICEServers)
	if err != nil || s.rtc.ICEServers == nil {
		ice = []byte("[]")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(bytes.Replace(micPage, []byte("ICE_SERVERS"), ice, 1))
}

func (s *Source) serveOffer(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var offer webrtc.SessionDescription
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil || offer.Type != webrtc.SDPTypeOffer {
		http.Error(w, "invalid SDP offer", http.StatusBadRequest)
		return
	}

	answer, status, err := s.accept(offer)
	if err != nil {
		slog.Warn("remote offer rejected", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(answer)
}

// accept negotiates a receive-only audio connection for offer.
func (s *Source) accept(offer webrtc.SessionDescription) (*webrtc.SessionDescription, int, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, http.StatusServiceUnavailable, errors.New("source closed")
	}

	pc, err := webrtc.NewPeerConnection(s.rtc)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("create peer connection: %w", err)
	}
	fail := func(status int, err error) (*webrtc.SessionDescription, int, error) {
		pc.Close()
		return nil, status, err
	}

	if _, err := pc.AddTransceiverFromKind(webrtc.RTPCodecTypeAudio, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionRecvonly,
	}); err != nil {
		return fail(http.StatusInternalServerError, fmt.Errorf("add transceiver: %w", err))
	}

	pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		if track.Kind() != webrtc.RTPCodecTypeAudio {
			return
		}
		if !s.beginTrack() {
			return
		}
		slog.Info("remote audio track", "codec", track.Codec().MimeType, "ssrc", uint32(track.SSRC()))
		go func() {
			defer s.tracks.Done()
			err := s.decode(func() ([]byte, error) {
				pkt, _, err := track.ReadRTP()
				if err != nil {
					return nil, err
				}
				return pkt.Payload, nil
			})
			slog.Info("remote audio track ended", "reason", err)
		}()
	})

	pc.OnConnectionStateChange(func(st webrtc.PeerConnectionState) {
		if st == webrtc.PeerConnectionStateFailed ||
			st == webrtc.PeerConnectionStateClosed ||
			st == webrtc.PeerConnectionStateDisconnected {
			if s.removePeer(pc) {
				pc.Close()
				slog.Info("remote peer disconnected", "remaining", s.PeerCount())
			}
		}
	})

	if err := pc.SetRemoteDescription(offer); err != nil {
		return fail(http.StatusBadRequest, fmt.Errorf("set remote description: %w", err))
	}
	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return fail(http.StatusInternalServerError, fmt.Errorf("create answer: %w", err))
	}
	gatherComplete := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(answer); err != nil {
		return fail(http.StatusInternalServerError, fmt.Errorf("set local description: %w", err))
	}
	<-gatherComplete

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fail(http.StatusServiceUnavailable, errors.New("source closed"))
	}
	s.peers = append(s.peers, pc)
	n := len(s.peers)
	s.mu.Unlock()

	slog.Info("remote peer connected", "total", n)
	return pc.LocalDescription(), http.StatusOK, nil
}

func (s *Source) removePeer(pc *webrtc.PeerConnection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.peers {
		if p == pc {
			s.peers = append(s.peers[:i], s.peers[i+1:]...)
			return true
		}
	}
	return false
}

// decode reads Opus payloads until next fails, publishing loudness for each
// decoded frame. The level drops to silence when the track ends.
func (s *Source) decode(next func() ([]byte, error)) error {
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return fmt.Errorf("opus decoder: %w", err)
	}
	defer s.level.Store(0)

	pcm := make([]int16, maxFrame*channels)
	var mono []float64
	for {
		payload, err := next()
		if err != nil {
			return err
		}
		if len(payload) == 0 {
			continue
		}
		n, err := dec.Decode(payload, pcm)
		if err != nil {
			slog.Debug("opus decode failed", "error", err)
			continue
		}
		mono = audio.PCM16(mono, pcm[:n*channels])

		s.mu.Lock()
		v := s.analyzer.Process(mono)
		s.mu.Unlock()

		s.level.Store(v)
		s.readyOnce.Do(func() { close(s.ready) })
	}
}

// open starts the ingest server and blocks until a browser streams audio,
// the configured wait elapses, or ctx ends.
func open(ctx context.Context, cfg *config.Config) (audio.Source, error) {
	s := New(cfg.Audio, cfg.Remote)
	addr, err := s.Start(cfg.Remote.Listen)
	if err != nil {
		return nil, err
	}
	slog.Info("waiting for microphone", "url", fmt.Sprintf("http://%s/", addr), "timeout_s", cfg.Remote.WaitTimeout)

	if cfg.Remote.WaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Remote.WaitTimeout*float64(time.Second)))
		defer cancel()
	}
	if err := s.WaitReady(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func init() {
	audio.Register("remote", open)
}
