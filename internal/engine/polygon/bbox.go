package polygon

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/pkg/math"
)

// boundsMargin pads every piece's bounding cube, in pixels.
const boundsMargin = 2

// DamageBox accumulates the screen region an animation frame touches.
type DamageBox struct {
	rect  image.Rectangle
	valid bool
}

// Reset empties the box.
func (d *DamageBox) Reset() {
	d.rect = image.Rectangle{}
	d.valid = false
}

// Empty reports whether nothing has been added since the last Reset.
func (d *DamageBox) Empty() bool { return !d.valid }

// Rect returns the accumulated box.
func (d *DamageBox) Rect() image.Rectangle { return d.rect }

// Union grows the box to cover r.
func (d *DamageBox) Union(r image.Rectangle) {
	if r.Empty() {
		return
	}
	if !d.valid {
		d.rect, d.valid = r, true
		return
	}
	d.rect = d.rect.Union(r)
}

// ExpandPoint grows the box to cover the pixels within half a pixel of
// (x, y).
func (d *DamageBox) ExpandPoint(x, y float32) {
	d.Union(image.Rect(
		int(math32.Floor(x-0.5)),
		int(math32.Floor(y-0.5)),
		int(math32.Ceil(x+0.5)),
		int(math32.Ceil(y+0.5)),
	))
}

// Projection is the host's view of the output the window is painted on.
type Projection struct {
	// ModelView maps screen pixels to eye space, before any piece transform.
	ModelView  math.Mat4
	Projection math.Mat4
	Viewport   Viewport
	// ScreenHeight flips projected y back to screen coordinates.
	ScreenHeight int
}

// BoundingCube returns the centre and half extents of the axis aligned
// cube enclosing p at any rotation about its axis offset. The z extent is
// in screen-width units. A set transformer moves the cube centre with the
// piece, at the progress of the last Step.
func (s *Set) BoundingCube(p *Polygon) (center math.Vec3, radius, zRadius float32) {
	w := s.screenWidth()
	off := p.RotationAxisOffset
	local := off
	if s.Transformer != nil {
		local = s.Transformer.TransformPolygon(p, s.progress).TransformPoint(off)
	}
	center = math.Vec3{
		X: p.Center.X + local.X,
		Y: p.Center.Y + local.Y,
		Z: p.Center.Z + local.Z/w,
	}
	radius = p.BoundingRadius + boundsMargin + off.MaxAbs()
	return center, radius, radius / w
}

// UpdateBoundingBox projects every piece's bounding cube to the screen and
// grows box to cover it.
func (s *Set) UpdateBoundingBox(proj Projection, box *DamageBox) {
	vp := [4]int{proj.Viewport.X, proj.Viewport.Y, proj.Viewport.Width, proj.Viewport.Height}
	screenH := float32(proj.ScreenHeight)

	modelView := proj.ModelView
	if s.Perspective == PerspectivePerWindow {
		modelView = proj.ModelView.Mul(s.skew(nil, proj.Viewport))
	}

	for i := range s.Polygons {
		p := &s.Polygons[i]
		mv := modelView
		if s.Perspective == PerspectivePerPolygon {
			mv = proj.ModelView.Mul(s.skew(p, proj.Viewport))
		}

		c, r, zr := s.BoundingCube(p)
		for _, corner := range [8]math.Vec3{
			{X: c.X - r, Y: c.Y - r, Z: c.Z + zr},
			{X: c.X - r, Y: c.Y + r, Z: c.Z + zr},
			{X: c.X + r, Y: c.Y - r, Z: c.Z + zr},
			{X: c.X + r, Y: c.Y + r, Z: c.Z + zr},
			{X: c.X - r, Y: c.Y - r, Z: c.Z - zr},
			{X: c.X - r, Y: c.Y + r, Z: c.Z - zr},
			{X: c.X + r, Y: c.Y - r, Z: c.Z - zr},
			{X: c.X + r, Y: c.Y + r, Z: c.Z - zr},
		} {
			win := math.Project(corner, mv, proj.Projection, vp)
			box.ExpandPoint(win.X, screenH-win.Y)
		}
	}
}
