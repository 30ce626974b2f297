package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/murmur/visualizer"
)

// Translate maps a key event to a visualizer action. quit reports a request
// to leave.
func Translate(ev *tcell.EventKey) (action visualizer.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return visualizer.ActionNone, true
	case tcell.KeyLeft:
		return visualizer.ActionOrbitLeft, false
	case tcell.KeyRight:
		return visualizer.ActionOrbitRight, false
	case tcell.KeyUp:
		return visualizer.ActionOrbitUp, false
	case tcell.KeyDown:
		return visualizer.ActionOrbitDown, false
	case tcell.KeyHome:
		return visualizer.ActionResetCamera, false
	case tcell.KeyRune:
	default:
		return visualizer.ActionNone, false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return visualizer.ActionNone, true
	case ' ':
		return visualizer.ActionPause, false
	case 'h', 'H':
		return visualizer.ActionToggleHUD, false
	case '+', '=':
		return visualizer.ActionZoomIn, false
	case '-', '_':
		return visualizer.ActionZoomOut, false
	case 'c', 'C':
		return visualizer.ActionCycleColor, false
	case 'n', 'N':
		return visualizer.ActionSnapshot, false
	}
	return visualizer.ActionNone, false
}

func status(v *visualizer.Visualizer) string {
	last := v.Swarm().LastStats()
	state := ""
	if v.Paused() {
		state = " PAUSED"
	}
	return fmt.Sprintf(" murmur  L %.2f  r %.2f  far %.0f  t %.1fs  tick %d%s  [space] pause [arrows] orbit [+/-] zoom [c] color [q] quit",
		last.Loudness, last.Radius, v.Fog().Far, v.Elapsed(), v.Tick(), state)
}

// Run ticks and draws v at fps until ctx ends, the user quits, or v reaches
// its tick limit. The caller owns screen and must Fini it afterwards.
func Run(ctx context.Context, screen tcell.Screen, v *visualizer.Visualizer, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	r := New(screen)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				action, quit := Translate(ev)
				if quit {
					return nil
				}
				v.Apply(action)
			}

		case now := <-ticker.C:
			v.Step(now.Sub(last).Seconds())
			last = now

			f := Frame{
				Particles: v.Particles(),
				Camera:    v.Camera(),
				Fog:       v.Fog(),
				Mode:      v.ColorMode(),
				Bound:     v.Swarm().Params().MaxPosition,
				Time:      v.Elapsed(),
			}
			if v.HUDVisible() {
				f.Status = status(v)
			}
			r.Draw(f)

			if v.Done() {
				return nil
			}
		}
	}
}
