// Package scene lays out a window on a screen and paints it through the
// engine: damage clips, texture mapping and the screen projection.
package scene

import (
	"image"

	"github.com/chewxy/math32"
	"seehuhn.de/go/geom/matrix"

	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

const (
	// shadowMargin is the decoration shadow around the demo window.
	shadowMargin = 12
	// windowShare is the window size relative to the screen.
	windowShare = 0.6
	fovY        = 60 * math32.Pi / 180
)

// Scene is the demo desktop: one window on a screen.
type Scene struct {
	Screen polygon.Screen
	Window polygon.Geometry
}

// NewScene centres a window on a screen of the given size.
func NewScene(width, height int) Scene {
	sc := Scene{Screen: polygon.Screen{Width: width, Height: height}}
	w := int(float32(width) * windowShare)
	h := int(float32(height) * windowShare)
	return sc.place(image.Rect(0, 0, w, h).Add(image.Pt((width-w)/2, (height-h)/2)))
}

// MoveTo recentres the window on (x, y), keeping it on screen.
func (sc Scene) MoveTo(x, y int) Scene {
	c := sc.Window.Content
	w, h := c.Dx(), c.Dy()
	minX := min(max(x-w/2, 0), max(sc.Screen.Width-w, 0))
	minY := min(max(y-h/2, 0), max(sc.Screen.Height-h, 0))
	return sc.place(image.Rect(minX, minY, minX+w, minY+h))
}

func (sc Scene) place(content image.Rectangle) Scene {
	sc.Window = polygon.Geometry{
		Content: content,
		Output:  content.Inset(-shadowMargin),
	}
	return sc
}

// TexMatrix maps screen pixels to window texture coordinates.
func (sc Scene) TexMatrix() matrix.Matrix {
	c := sc.Window.Content
	w, h := float64(c.Dx()), float64(c.Dy())
	if w == 0 || h == 0 {
		return matrix.Identity
	}
	return matrix.Matrix{1 / w, 0, 0, 1 / h, -float64(c.Min.X) / w, -float64(c.Min.Y) / h}
}

// ClipBatches splits the window into rows horizontal bands, each painted
// by its own draw call.
func (sc Scene) ClipBatches(rows int) [][]polygon.ClipInput {
	c := sc.Window.Content
	if rows < 1 {
		rows = 1
	}
	if rows > c.Dy() {
		rows = max(c.Dy(), 1)
	}
	tex := sc.TexMatrix()
	if rows == 1 {
		return [][]polygon.ClipInput{{{Box: c, TexMatrix: tex}}}
	}

	batches := make([][]polygon.ClipInput, 0, rows)
	for i := 0; i < rows; i++ {
		y0 := c.Min.Y + c.Dy()*i/rows
		y1 := c.Min.Y + c.Dy()*(i+1)/rows
		box := image.Rect(c.Min.X, y0, c.Max.X, y1)
		batches = append(batches, []polygon.ClipInput{{Box: box, TexMatrix: tex}})
	}
	return batches
}

// Viewport returns the full screen viewport.
func (sc Scene) Viewport() polygon.Viewport {
	return polygon.Viewport{Width: sc.Screen.Width, Height: sc.Screen.Height}
}

// Projection returns the transform that maps the screen plane 1:1 onto
// the viewport, with the camera at the standard depth.
func (sc Scene) Projection() polygon.Projection {
	w, h := float32(sc.Screen.Width), float32(sc.Screen.Height)
	return polygon.Projection{
		ModelView:    math.ScreenSpace(0, 0, w, h, -math.DefaultZCamera),
		Projection:   math.Perspective(fovY, 1, 0.1, 100),
		Viewport:     sc.Viewport(),
		ScreenHeight: sc.Screen.Height,
	}
}

// Host paints a scene's window through a backend at full opacity.
type Host struct {
	Scene    Scene
	Target   polygon.Backend
	ClipRows int
}

func (h *Host) ClipBatches() [][]polygon.ClipInput { return h.Scene.ClipBatches(h.ClipRows) }
func (h *Host) Backend() polygon.Backend           { return h.Target }
func (h *Host) Viewport() polygon.Viewport         { return h.Scene.Viewport() }
func (h *Host) Projection() polygon.Projection     { return h.Scene.Projection() }

func (h *Host) Paint() polygon.PaintAttributes {
	return polygon.PaintAttributes{Opacity: 1, Brightness: 1, Saturation: 1}
}
