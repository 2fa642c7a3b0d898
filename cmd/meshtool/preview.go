package main

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/Faultbox/polyfx/internal/engine/lighting"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/scene"
	"github.com/Faultbox/polyfx/pkg/math"
)

var (
	backgroundColor = color.RGBA{R: 0x1a, G: 0x1a, B: 0x26, A: 0xff}
	damageColor     = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
)

// rasterize paints the front face of every visible piece at its current
// pose, filled with the surface colour under the piece's start centre and
// shaded like the renderer when the set is lit. Perspective correction and
// depth order are ignored.
func rasterize(s *polygon.Set, sc scene.Scene, fp float32, surface *image.RGBA) *image.RGBA {
	w, h := sc.Screen.Width, sc.Screen.Height
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	proj := sc.Projection()
	vp := [4]int{0, 0, w, h}
	content := sc.Window.Content
	z := vector.NewRasterizer(w, h)

	for i := range s.Polygons {
		p := &s.Polygons[i]
		opacity := s.PolygonOpacity(p, 1, fp)
		if opacity <= 0 {
			continue
		}

		m := s.PolygonTransform(p, fp)
		z.Reset(w, h)
		for k := 0; k < p.NumSides; k++ {
			win := math.Project(m.TransformPoint(p.Vertices[k]), proj.ModelView, proj.Projection, vp)
			x, y := win.X, float32(h)-win.Y
			if k == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()

		c := surface.RGBAAt(int(p.CenterStart.X)-content.Min.X, int(p.CenterStart.Y)-content.Min.Y)
		if s.Lighting {
			origin := m.TransformPoint(math.Vec3{})
			c = shade(c, lighting.Piece.Intensity(m.TransformPoint(p.FrontNormal()).Sub(origin)))
		}
		c.A = uint8(float32(c.A) * min(opacity, 1))
		z.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA(c)), image.Point{})
	}
	return dst
}

func shade(c color.RGBA, k float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}

// strokeRect draws a one pixel outline of r clipped to img.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}
