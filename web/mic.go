//go:build js
// +build js

package web

import (
	"errors"
	"fmt"

	"github.com/gopherjs/gopherjs/js"
)

// ErrNoMicrophone is reported when the browser has no usable microphone or
// the user denies access.
var ErrNoMicrophone = errors.New("microphone unavailable")

// Mic samples microphone loudness from a Web Audio AnalyserNode. It is
// sampled on the animation frame, so no locking is needed.
type Mic struct {
	analyser *js.Object
	bins     []byte
	level    float64
}

// AcquireMic asks for microphone access. Exactly one of ready or fail runs,
// after the permission prompt resolves.
func AcquireMic(fftSize int, ready func(*Mic), fail func(error)) {
	media := js.Global.Get("navigator").Get("mediaDevices")
	if media == js.Undefined || media.Get("getUserMedia") == js.Undefined {
		fail(fmt.Errorf("%w: getUserMedia not supported", ErrNoMicrophone))
		return
	}

	media.Call("getUserMedia", map[string]interface{}{"audio": true}).
		Call("then", func(stream *js.Object) {
			m, err := newMic(stream, fftSize)
			if err != nil {
				fail(err)
				return
			}
			ready(m)
		}).
		Call("catch", func(e *js.Object) {
			fail(fmt.Errorf("%w: %s", ErrNoMicrophone, e.Get("message").String()))
		})
}

func newMic(stream *js.Object, fftSize int) (*Mic, error) {
	ctor := js.Global.Get("AudioContext")
	if ctor == js.Undefined {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if ctor == js.Undefined {
		return nil, fmt.Errorf("%w: no AudioContext", ErrNoMicrophone)
	}

	ctx := ctor.New()
	analyser := ctx.Call("createAnalyser")
	analyser.Set("fftSize", fftSize)
	ctx.Call("createMediaStreamSource", stream).Call("connect", analyser)

	return &Mic{
		analyser: analyser,
		bins:     make([]byte, analyser.Get("frequencyBinCount").Int()),
	}, nil
}

// Sample reads the current spectrum into the level.
func (m *Mic) Sample() {
	m.analyser.Call("getByteFrequencyData", m.bins)
	m.level = MeanLevel(m.bins)
}

// Loudness returns the level from the last Sample.
func (m *Mic) Loudness() float64 {
	return m.level
}
