package polygon

import "image"

// overlaps is the strict box test used to select pieces for a clip; boxes
// that only share an edge do not overlap.
func overlaps(bb, cb image.Rectangle) bool {
	return !(bb.Max.X <= cb.Min.X ||
		bb.Max.Y <= cb.Min.Y ||
		bb.Min.X >= cb.Max.X ||
		bb.Min.Y >= cb.Max.Y)
}

// resolve computes the intersecting pieces and their texture coordinates
// for every undrawn clip that has not been resolved yet.
func (s *Set) resolve() {
	for ci := s.firstUndrawn; ci < len(s.clips); ci++ {
		c := &s.clips[ci]
		if c.resolved {
			continue
		}
		s.resolveClip(c)
	}
}

func (s *Set) resolveClip(c *Clip) {
	if need := 4 * s.totalSides; cap(c.TexCoords) < need {
		c.TexCoords = make([]float32, need)
	} else {
		c.TexCoords = c.TexCoords[:need]
	}
	c.Intersecting = c.Intersecting[:0]

	m := c.TexMatrix
	sheared := m[1] != 0 || m[2] != 0

	frontVertices := 0
	for pi := range s.Polygons {
		p := &s.Polygons[pi]
		if !overlaps(p.BoundingBox, c.Box) {
			continue
		}
		c.Intersecting = append(c.Intersecting, pi)

		n := p.NumSides
		block := c.TexCoords[4*frontVertices : 4*frontVertices+4*n]
		for k := 0; k < n; k++ {
			x := float64(p.Vertices[k].X + p.CenterStart.X)
			y := float64(p.Vertices[k].Y + p.CenterStart.Y)

			var u, v float64
			if sheared {
				u = m[0]*x + m[2]*y + m[4]
				v = m[1]*x + m[3]*y + m[5]
			} else {
				u = m[0]*x + m[4]
				v = m[3]*y + m[5]
			}

			back := 2*n - 1 - k
			block[2*k] = float32(u)
			block[2*k+1] = float32(v)
			block[2*back] = float32(u)
			block[2*back+1] = float32(v)
		}
		frontVertices += n
	}
	c.resolved = true
}
