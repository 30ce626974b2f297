//go:build js
// +build js

// Command web is the browser build of the visualizer. Build with
// `gopherjs build ./cmd/web` and load the output from a page that contains
// an a-scene element.
package main

import (
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/web"
)

func main() {
	cfg, err := config.Defaults()
	if err != nil {
		panic(err)
	}

	scene, err := web.NewScene(cfg, time.Now().UnixNano())
	if err != nil {
		panic(err)
	}

	web.AcquireMic(cfg.Audio.FFTSize, scene.Start, func(err error) {
		js.Global.Get("console").Call("error", "murmur:", err.Error())
		js.Global.Call("alert", "murmur needs microphone access: "+err.Error())
	})

	js.Global.Call("addEventListener", "beforeunload", func() {
		scene.Stop()
	})

	select {}
}
