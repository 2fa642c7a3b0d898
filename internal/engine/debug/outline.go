// Package debug provides debug visualization utilities.
package debug

import (
	"image"

	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// RectOutline returns the four corners of r as xyz triplets for a line loop.
func RectOutline(r image.Rectangle) []float32 {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	return []float32{
		x0, y0, 0,
		x1, y0, 0,
		x1, y1, 0,
		x0, y1, 0,
	}
}

// CubeWireframe returns the 12 edges of an axis aligned cube as line
// vertex pairs, 24 vertices in all.
func CubeWireframe(c math.Vec3, radius, zRadius float32) []float32 {
	minX, minY, minZ := c.X-radius, c.Y-radius, c.Z-zRadius
	maxX, maxY, maxZ := c.X+radius, c.Y+radius, c.Z+zRadius
	return []float32{
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, minX, maxY, minZ,
		minX, maxY, minZ, minX, minY, minZ,

		minX, minY, maxZ, maxX, minY, maxZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, minY, maxZ,

		minX, minY, minZ, minX, minY, maxZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		minX, maxY, minZ, minX, maxY, maxZ,
	}
}

// CubeWireframeVertexCount is the vertex count of CubeWireframe.
const CubeWireframeVertexCount = 24

// PieceOutlines returns line vertex pairs tracing the front face of every
// piece at its start position, in screen pixels. It shows how a window was
// cut up.
func PieceOutlines(s *polygon.Set) []float32 {
	var out []float32
	for i := range s.Polygons {
		p := &s.Polygons[i]
		c := p.CenterStart
		n := p.NumSides
		for k := 0; k < n; k++ {
			a, b := p.Vertices[k], p.Vertices[(k+1)%n]
			out = append(out,
				c.X+a.X, c.Y+a.Y, 0,
				c.X+b.X, c.Y+b.Y, 0,
			)
		}
	}
	return out
}
