// Package terminal draws the swarm on a character grid with tcell.
//
// Particles are projected through the orbit camera with a viewport of one
// column by two half-rows per cell, which keeps the projection square on
// typical terminal fonts. A depth buffer keeps the nearest particle per cell.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/systems"
)

// Glyphs by projected radius in half-rows.
var glyphs = []struct {
	maxRadius float64
	r         rune
}{
	{0.5, '·'},
	{1, '•'},
	{2, 'o'},
	{4, 'O'},
	{math.Inf(1), '@'},
}

// Frame is everything needed to draw one terminal frame.
type Frame struct {
	Particles []systems.ParticleState
	Camera    *camera.Camera
	Fog       systems.FogState
	Mode      systems.ColorMode
	Bound     float64
	Time      float64
	Status    string // Top line; empty hides it
}

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen     tcell.Screen
	depth      []float64
	cols, rows int
}

// New creates a renderer for an initialized screen.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func glyphFor(screenRadius float64) rune {
	for _, g := range glyphs {
		if screenRadius < g.maxRadius {
			return g.r
		}
	}
	return glyphs[len(glyphs)-1].r
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fit matches the camera viewport to the screen in half-rows.
func (r *Renderer) fit(cam *camera.Camera) {
	cols, rows := r.screen.Size()
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		r.depth = make([]float64, cols*rows)
	}
	w, h := float64(cols), float64(rows*2)
	if cam.ViewportW != w || cam.ViewportH != h {
		cam.Resize(w, h)
	}
}

// Draw renders f and shows the screen.
func (r *Renderer) Draw(f Frame) {
	r.fit(f.Camera)

	bg := rgb(f.Fog.ClearColor())
	base := tcell.StyleDefault.Background(bg)
	r.screen.Fill(' ', base)
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}

	proj := f.Camera.Projector()
	eye := f.Camera.Eye()
	n := len(f.Particles)

	for i := range f.Particles {
		p := &f.Particles[i]
		world := mgl64.Vec3{p.Position.X, p.Position.Y, p.Position.Z}
		sx, sy, depth, ok := proj.Project(world)
		if !ok {
			continue
		}
		col, row := int(sx), int(sy/2)
		if col < 0 || col >= r.cols || row < 0 || row >= r.rows {
			continue
		}
		cell := row*r.cols + col
		if depth >= r.depth[cell] {
			continue
		}
		r.depth[cell] = depth

		c := systems.ParticleColor(*p, n, f.Mode, f.Time, f.Bound)
		c = systems.Blend(c, systems.FogColor, f.Fog.Factor(eye.Sub(world).Len()))
		style := base.Foreground(rgb(c))
		r.screen.SetContent(col, row, glyphFor(proj.ScreenRadius(p.Radius, depth)), nil, style)
	}

	if f.Status != "" {
		r.drawStatus(f.Status)
	}
	r.screen.Show()
}

func (r *Renderer) drawStatus(s string) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	x := 0
	for _, ch := range s {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, 0, ch, nil, style)
		x++
	}
	for ; x < r.cols; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}
