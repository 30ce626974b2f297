package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/components"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/visualizer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.Count = 32
	return cfg
}

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellRune(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		radius float64
		want   rune
	}{
		{0, '·'},
		{0.7, '•'},
		{1.5, 'o'},
		{3, 'O'},
		{40, '@'},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.radius); got != tt.want {
			t.Errorf("glyphFor(%v) = %q, want %q", tt.radius, got, tt.want)
		}
	}
}

func TestDrawProjectsOrigin(t *testing.T) {
	// Odd sizes put the view center mid-cell
	s := simScreen(t, 41, 21)
	cfg := testConfig(t)
	cam := camera.New(1, 1, cfg.Camera)

	r := New(s)
	r.Draw(Frame{
		Particles: []systems.ParticleState{{Index: 0, Radius: 0}},
		Camera:    cam,
		Bound:     800,
	})

	if cam.ViewportW != 41 || cam.ViewportH != 42 {
		t.Errorf("viewport = %vx%v, want 41x42", cam.ViewportW, cam.ViewportH)
	}
	if got := cellRune(s, 20, 10); got != '·' {
		t.Errorf("center cell = %q, want particle glyph", got)
	}
	if got := cellRune(s, 0, 20); got != ' ' {
		t.Errorf("corner cell = %q, want blank", got)
	}
}

func TestDrawKeepsNearest(t *testing.T) {
	s := simScreen(t, 41, 21)
	cam := camera.New(41, 42, testConfig(t).Camera)
	eye := cam.Eye()

	far := systems.ParticleState{Index: 0, Radius: 0}
	near := systems.ParticleState{
		Index:    1,
		Radius:   4,
		Position: components.Position{X: eye[0] / 2, Y: eye[1] / 2, Z: eye[2] / 2},
	}

	for _, order := range [][]systems.ParticleState{{far, near}, {near, far}} {
		New(s).Draw(Frame{Particles: order, Camera: cam, Bound: 800})
		if got := cellRune(s, 20, 10); got == '·' || got == ' ' {
			t.Errorf("center cell = %q, want the nearer, larger glyph", got)
		}
	}
}

func TestDrawStatusLine(t *testing.T) {
	s := simScreen(t, 20, 5)
	New(s).Draw(Frame{Camera: camera.New(20, 10, testConfig(t).Camera), Status: "hello"})
	for i, want := range "hello" {
		if got := cellRune(s, i, 0); got != want {
			t.Errorf("status cell %d = %q, want %q", i, got, want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		want  visualizer.Action
		wantQ bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), visualizer.ActionNone, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), visualizer.ActionNone, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), visualizer.ActionPause, false},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), visualizer.ActionOrbitLeft, false},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), visualizer.ActionZoomIn, false},
		{"minus", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), visualizer.ActionZoomOut, false},
		{"hud", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), visualizer.ActionToggleHUD, false},
		{"color", tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), visualizer.ActionCycleColor, false},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), visualizer.ActionNone, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), visualizer.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := Translate(tt.ev)
			if got != tt.want || quit != tt.wantQ {
				t.Errorf("Translate = %v, %v; want %v, %v", got, quit, tt.want, tt.wantQ)
			}
		})
	}
}

type constSource float64

func (s constSource) Loudness() float64 { return float64(s) }
func (s constSource) Close() error      { return nil }

func TestRunStopsAtMaxTicks(t *testing.T) {
	s := simScreen(t, 60, 20)
	v, err := visualizer.New(visualizer.Options{Renderer: visualizer.RendererTerminal, MaxTicks: 5}, testConfig(t), constSource(0.3))
	if err != nil {
		t.Fatal(err)
	}
	defer v.Unload()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, s, v, 120); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.Tick() != 5 {
		t.Errorf("Tick = %d, want 5", v.Tick())
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	s := simScreen(t, 60, 20)
	v, err := visualizer.New(visualizer.Options{Renderer: visualizer.RendererTerminal}, testConfig(t), constSource(0))
	if err != nil {
		t.Fatal(err)
	}
	defer v.Unload()

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, s, v, 30); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run only returned on timeout")
	}
}
