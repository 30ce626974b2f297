// Noise field preview tool: shows the noise the swarm samples for one axis,
// particle index across and time down, with sliders for the inputs.
//
// Usage: go run ./cmd/noisepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/noise"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	gridSize     = 256
	panelWidth   = windowWidth - previewSize - 30
)

var kinds = []string{noise.KindSimplex, noise.KindPerlin}

func defaults(cfg *config.Config) previewParams {
	return previewParams{
		Kind:      cfg.Noise.Kind,
		Seed:      cfg.Noise.Seed,
		Frequency: cfg.Swarm.Frequency,
		Offsets:   cfg.Swarm.AxisOffsets,
		Count:     cfg.Swarm.Count,
		TimeSpan:  10,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := defaults(cfg)
	src, err := noise.New(params.Kind, params.Seed)
	if err != nil {
		slog.Error("failed to create noise source", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := make([]float64, gridSize*gridSize)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var t0 float64
	animating := false
	needsRegen := true

	slider := func(y float32, label, lo, hi, value string, v, minV, maxV float32) float32 {
		rl.DrawText(label, int32(previewSize+20), int32(y), 14, rl.Gray)
		out := gui.SliderBar(
			rl.Rectangle{X: previewSize + 20, Y: y + 18, Width: float32(panelWidth - 80), Height: 20},
			lo, hi, v, minV, maxV,
		)
		rl.DrawText(value, int32(previewSize+20+panelWidth-70), int32(y+20), 16, rl.DarkGray)
		return out
	}

	for !rl.WindowShouldClose() {
		if animating {
			t0 += float64(rl.GetFrameTime())
			needsRegen = true
		}

		if needsRegen {
			fillField(grid, gridSize, src, params, t0)
			for i, v := range grid {
				pixels[i] = colorFor(v)
			}
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		lo, hi, mean := fieldStats(grid)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", lo, hi, mean), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.1fs .. %.1fs", t0, t0+params.TimeSpan), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText("Particle index ->   Time (down)", 15, statsY+40, 14, rl.Gray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Swarm Noise Input", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if f := slider(panelY, "Frequency (input step per index)", "0", "0.05",
			fmt.Sprintf("%.4f", params.Frequency), float32(params.Frequency), 0, 0.05); f != float32(params.Frequency) {
			params.Frequency = float64(f)
			needsRegen = true
		}
		panelY += 50

		if s := slider(panelY, "Time span (seconds down the preview)", "0.5", "60",
			fmt.Sprintf("%.1f", params.TimeSpan), float32(params.TimeSpan), 0.5, 60); s != float32(params.TimeSpan) {
			params.TimeSpan = float64(s)
			needsRegen = true
		}
		panelY += 50

		if c := slider(panelY, "Particles across", "16", "10000",
			fmt.Sprintf("%d", params.Count), float32(params.Count), 16, 10000); int(c) != params.Count {
			params.Count = int(c)
			needsRegen = true
		}
		panelY += 50

		if s := slider(panelY, "Seed", "0", "99999",
			fmt.Sprintf("%d", params.Seed), float32(params.Seed), 0, 99999); int64(s) != params.Seed {
			params.Seed = int64(s)
			src = mustNoise(params)
			needsRegen = true
		}
		panelY += 55

		for axis, name := range []string{"X", "Y", "Z"} {
			x := panelX + float32(axis)*70
			if gui.Toggle(rl.Rectangle{X: x, Y: panelY, Width: 60, Height: 28}, name, params.Axis == axis) && params.Axis != axis {
				params.Axis = axis
				needsRegen = true
			}
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Kind: "+params.Kind) {
			params.Kind = nextKind(params.Kind)
			src = mustNoise(params)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t0 = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			src = mustNoise(params)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults(cfg)
			src = mustNoise(params)
			t0 = 0
			needsRegen = true
		}
		panelY += 55

		yaml := fmt.Sprintf("noise:\n  kind: %s\n  seed: %d\nswarm:\n  frequency: %.4f", params.Kind, params.Seed, params.Frequency)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(yaml, int32(panelX), int32(panelY)+25, 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func nextKind(kind string) string {
	for i, k := range kinds {
		if k == kind {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}

// mustNoise rebuilds the source. Kinds come from the fixed list, so failure
// is a programming error.
func mustNoise(p previewParams) noise.Source {
	src, err := noise.New(p.Kind, p.Seed)
	if err != nil {
		panic(err)
	}
	return src
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
