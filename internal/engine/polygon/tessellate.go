package polygon

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/pkg/math"
)

const (
	// MinCellSize is the smallest rectangle or triangle cell in pixels.
	MinCellSize = 10
	// MinHexCellSize is the smallest hexagon cell in pixels.
	MinHexCellSize = 20
	// MinGlassSize is the smallest window extent that is shattered.
	MinGlassSize = 100
)

// GridSpec describes a tessellation request.
type GridSpec struct {
	Topology   Topology
	GridWidth  int
	GridHeight int

	// Thickness is the extrusion depth in pixels.
	Thickness float32

	// Spokes is the glass spoke multiplier (spokes per window quadrant).
	Spokes int
	// Tiers is the number of glass rings.
	Tiers int
	// Rand jitters glass spokes. Nil keeps them evenly spaced.
	Rand *rand.Rand
}

// vec2 is a ring point relative to a piece centre.
type vec2 struct{ x, y float32 }

var rectSideNormals = []math.Vec3{
	{X: -1}, // left
	{Y: 1},  // bottom
	{X: 1},  // right
	{Y: -1}, // top
}

// Tessellate splits r into pieces. screenWidth normalizes the thickness.
// Nothing is returned on error.
func Tessellate(spec GridSpec, r image.Rectangle, screenWidth float32) ([]Polygon, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, ErrDegenerateBounds
	}
	if screenWidth <= 0 {
		screenWidth = 1
	}
	halfThick := spec.Thickness / screenWidth / 2

	switch spec.Topology {
	case Rectangles:
		return tessellateRects(r, spec.GridWidth, spec.GridHeight, halfThick)
	case Hexagons:
		return tessellateHexagons(r, spec.GridWidth, spec.GridHeight, halfThick)
	case Triangles:
		return tessellateTriangles(r, spec.GridWidth, spec.GridHeight, halfThick)
	case Glass:
		return tessellateGlass(r, spec.Spokes, spec.Tiers, halfThick, spec.Rand)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownTopology, spec.Topology)
}

// EffectiveGrid returns the grid resolution after applying the minimum
// cell size floor to an extent of w by h pixels.
func EffectiveGrid(w, h, gridW, gridH, minCell int) (int, int) {
	return floorGrid(w, gridW, minCell), floorGrid(h, gridH, minCell)
}

func floorGrid(extent, grid, minCell int) int {
	if grid < 1 {
		grid = 1
	}
	if float32(extent)/float32(grid) < float32(minCell) {
		grid = extent / minCell
	}
	if grid < 1 {
		grid = 1
	}
	return grid
}

func checkCount(n int) error {
	if n <= 0 {
		return ErrDegenerateBounds
	}
	if n > MaxPolygons {
		return fmt.Errorf("%w: %d pieces", ErrOutOfMemory, n)
	}
	return nil
}

func tessellateRects(r image.Rectangle, gridW, gridH int, halfThick float32) ([]Polygon, error) {
	gx, gy := EffectiveGrid(r.Dx(), r.Dy(), gridW, gridH, MinCellSize)
	if err := checkCount(gx * gy); err != nil {
		return nil, err
	}

	cellW := float32(r.Dx()) / float32(gx)
	cellH := float32(r.Dy()) / float32(gy)
	hw, hh := cellW/2, cellH/2
	ring := []vec2{{-hw, -hh}, {-hw, hh}, {hw, hh}, {hw, -hh}}

	polys := make([]Polygon, 0, gx*gy)
	for y := 0; y < gy; y++ {
		for x := 0; x < gx; x++ {
			c := math.Vec3{
				X: float32(r.Min.X) + cellW*(float32(x)+0.5),
				Y: float32(r.Min.Y) + cellH*(float32(y)+0.5),
				Z: -halfThick,
			}
			p := newPolygon(c, ring, halfThick, rectSideNormals)
			p.CenterRel = [2]float32{
				(float32(x) + 0.5) / float32(gx),
				(float32(y) + 0.5) / float32(gy),
			}
			polys = append(polys, p)
		}
	}
	return polys, nil
}

func tessellateHexagons(r image.Rectangle, gridW, gridH int, halfThick float32) ([]Polygon, error) {
	gx, gy := EffectiveGrid(r.Dx(), r.Dy(), gridW, gridH, MinHexCellSize)
	n := (gy+1)*gx + (gy+1)/2
	if err := checkCount(n); err != nil {
		return nil, err
	}

	cellW := float32(r.Dx()) / float32(gx)
	cellH := float32(r.Dy()) / float32(gy)
	halfW := cellW / 2
	twoThirdsH := 2 * cellH / 3
	thirdH := cellH / 3

	polys := make([]Polygon, 0, n)
	for y := 0; y <= gy; y++ {
		posY := float32(r.Min.Y) + cellH*float32(y)
		odd := y%2 == 1
		inRow := gx
		if odd {
			inRow = gx + 1
		}

		// First and last rows are cut by the window edge.
		topY, topSideY := -twoThirdsH, -thirdH
		bottomY, bottomSideY := twoThirdsH, thirdH
		if y == 0 {
			topY, topSideY = 0, 0
		}
		if y == gy {
			bottomY, bottomSideY = 0, 0
		}

		for x := 0; x < inRow; x++ {
			leftX, rightX := -halfW, halfW
			if odd && x == 0 {
				leftX = 0
			}
			if odd && x == inRow-1 {
				rightX = 0
			}

			offset := float32(0.5)
			if odd {
				offset = 0
			}
			c := math.Vec3{
				X: float32(r.Min.X) + cellW*(float32(x)+offset),
				Y: posY,
				Z: -halfThick,
			}
			ring := []vec2{
				{0, topY},
				{leftX, topSideY},
				{leftX, bottomSideY},
				{0, bottomY},
				{rightX, bottomSideY},
				{rightX, topSideY},
			}
			p := newPolygon(c, ring, halfThick, nil)
			p.CenterRel = [2]float32{
				(float32(x) + offset) / float32(gx),
				(float32(y) + 0.5) / float32(gy),
			}
			polys = append(polys, p)
		}
	}
	return polys, nil
}

// tessellateTriangles splits every cell along a diagonal whose direction
// alternates like a checkerboard.
func tessellateTriangles(r image.Rectangle, gridW, gridH int, halfThick float32) ([]Polygon, error) {
	gx, gy := EffectiveGrid(r.Dx(), r.Dy(), gridW, gridH, MinCellSize)
	if err := checkCount(2 * gx * gy); err != nil {
		return nil, err
	}

	cellW := float32(r.Dx()) / float32(gx)
	cellH := float32(r.Dy()) / float32(gy)

	polys := make([]Polygon, 0, 2*gx*gy)
	for y := 0; y < gy; y++ {
		for x := 0; x < gx; x++ {
			x0 := float32(r.Min.X) + cellW*float32(x)
			y0 := float32(r.Min.Y) + cellH*float32(y)
			x1, y1 := x0+cellW, y0+cellH

			var tris [2][3]vec2
			if (x+y)%2 == 0 {
				tris[0] = [3]vec2{{x0, y0}, {x0, y1}, {x1, y0}}
				tris[1] = [3]vec2{{x1, y0}, {x0, y1}, {x1, y1}}
			} else {
				tris[0] = [3]vec2{{x0, y0}, {x0, y1}, {x1, y1}}
				tris[1] = [3]vec2{{x0, y0}, {x1, y1}, {x1, y0}}
			}
			for _, tri := range tris {
				p := shard(tri[:], halfThick)
				p.CenterRel = [2]float32{
					(p.CenterStart.X - float32(r.Min.X)) / float32(r.Dx()),
					(p.CenterStart.Y - float32(r.Min.Y)) / float32(r.Dy()),
				}
				polys = append(polys, p)
			}
		}
	}
	return polys, nil
}

type spoke struct {
	direction float32
	length    float32
	points    []vec2
}

func tessellateGlass(r image.Rectangle, multiplier, tiers int, halfThick float32, rng *rand.Rand) ([]Polygon, error) {
	if r.Dx() < MinGlassSize || r.Dy() < MinGlassSize {
		return nil, ErrDegenerateBounds
	}
	if multiplier < 1 {
		multiplier = 1
	}
	if tiers < 1 {
		tiers = 1
	}
	numSpokes := 4 * multiplier
	if err := checkCount(numSpokes * tiers); err != nil {
		return nil, err
	}

	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	cx, cy := x0+w/2, y0+h/2

	a := math32.Atan((cy - y0) / (x0 + w - cx))
	corners := [4]float32{a, math32.Pi - a, math32.Pi + a, 2*math32.Pi - a}

	spokes := make([]spoke, numSpokes)
	for i := range spokes {
		q := i / multiplier
		dir := corners[q]
		if i%multiplier != 0 {
			span := corners[(q+1)%4] - corners[q]
			if span < 0 {
				span += 2 * math32.Pi
			}
			spacing := span / float32(multiplier)
			dir += float32(i%multiplier) * spacing
			if rng != nil {
				dir += spacing * rng.Float32() / 3
			}
		}
		dir = wrapAngle(dir)

		var vertical, horizontal float32
		if dir < math32.Pi {
			vertical = y0 + h - cy
		} else {
			vertical = cy - y0
		}
		if dir < math32.Pi/2 || dir > 3*math32.Pi/2 {
			horizontal = x0 + w - cx
		} else {
			horizontal = cx - x0
		}
		sin, cos := math32.Sincos(dir)
		length := math32.Min(
			math32.Abs(vertical/sin),
			math32.Abs(horizontal/cos),
		)

		sp := spoke{direction: dir, length: length, points: make([]vec2, tiers)}
		for j := 0; j < tiers; j++ {
			dist := float32(j+1) / float32(tiers) * length
			sp.points[j] = vec2{cx + dist*cos, cy + dist*sin}
		}
		spokes[i] = sp
	}

	polys := make([]Polygon, 0, numSpokes*tiers)
	for i := range spokes {
		next := spokes[(i+1)%numSpokes]
		for j := 0; j < tiers; j++ {
			var pts []vec2
			if j == 0 {
				pts = []vec2{{cx, cy}, spokes[i].points[0], next.points[0]}
			} else {
				pts = []vec2{
					spokes[i].points[j-1],
					spokes[i].points[j],
					next.points[j],
					next.points[j-1],
				}
			}
			p := shard(pts, halfThick)
			p.CenterRel = [2]float32{(p.CenterStart.X - x0) / w, (p.CenterStart.Y - y0) / h}
			polys = append(polys, p)
		}
	}
	return polys, nil
}

func wrapAngle(a float32) float32 {
	for a >= 2*math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < 0 {
		a += 2 * math32.Pi
	}
	return a
}

// shard builds a piece from absolute ring points centred on their average.
func shard(pts []vec2, halfThick float32) Polygon {
	var cx, cy float32
	for _, p := range pts {
		cx += p.x
		cy += p.y
	}
	cx /= float32(len(pts))
	cy /= float32(len(pts))

	ring := make([]vec2, len(pts))
	for i, p := range pts {
		ring[i] = vec2{p.x - cx, p.y - cy}
	}
	return newPolygon(math.Vec3{X: cx, Y: cy, Z: -halfThick}, ring, halfThick, nil)
}

// newPolygon extrudes a centre-relative ring. When sideNormals is nil the
// side normals are derived from the ring edges.
func newPolygon(center math.Vec3, ring []vec2, halfThick float32, sideNormals []math.Vec3) Polygon {
	if sideNormals == nil {
		ring = orientRing(ring)
	}
	n := len(ring)
	p := Polygon{
		NumSides:     n,
		Vertices:     make([]math.Vec3, 2*n),
		SideIndices:  make([]uint16, 4*n),
		Normals:      make([]math.Vec3, n+2),
		CenterStart:  center,
		Center:       center,
		RotationAxis: math.Vec3{Z: 1},
		// Pieces move over the whole animation unless an effect narrows
		// the window.
		MoveDuration: 1,
	}

	for k, v := range ring {
		p.Vertices[k] = math.Vec3{X: v.x, Y: v.y, Z: halfThick}
		p.Vertices[2*n-1-k] = math.Vec3{X: v.x, Y: v.y, Z: -halfThick}
	}

	p.Normals[0] = math.Vec3{Z: 1}
	p.Normals[1] = math.Vec3{Z: -1}
	for k := 0; k < n; k++ {
		k1 := (k + 1) % n
		p.SideIndices[4*k+0] = uint16(k1)
		p.SideIndices[4*k+1] = uint16(k)
		p.SideIndices[4*k+2] = uint16(2*n - 1 - k)
		p.SideIndices[4*k+3] = uint16(2*n - 1 - k1)
		if sideNormals != nil {
			p.Normals[2+k] = sideNormals[k]
		} else {
			p.Normals[2+k] = edgeNormal(ring[k], ring[k1])
		}
	}

	minX, minY := ring[0].x, ring[0].y
	maxX, maxY := minX, minY
	var radius float32
	for _, v := range ring {
		minX, maxX = math32.Min(minX, v.x), math32.Max(maxX, v.x)
		minY, maxY = math32.Min(minY, v.y), math32.Max(maxY, v.y)
		radius = math32.Max(radius, v.x*v.x+v.y*v.y)
	}
	p.BoundingBox = image.Rect(
		int(math32.Floor(center.X+minX)),
		int(math32.Floor(center.Y+minY)),
		int(math32.Ceil(center.X+maxX)),
		int(math32.Ceil(center.Y+maxY)),
	)
	p.BoundingRadius = math32.Sqrt(radius + halfThick*halfThick)
	return p
}

// orientRing makes the ring wind the same way as the rectangle front face
// (negative signed area in screen coordinates).
func orientRing(ring []vec2) []vec2 {
	var area float32
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		area += a.x*b.y - b.x*a.y
	}
	if area <= 0 {
		return ring
	}
	out := make([]vec2, len(ring))
	for i, v := range ring {
		out[len(ring)-1-i] = v
	}
	return out
}

// edgeNormal returns the outward normal of the side between a and b.
func edgeNormal(a, b vec2) math.Vec3 {
	dx, dy := b.x-a.x, b.y-a.y
	n := math.Vec3{X: -dy, Y: dx}
	if n.Length() == 0 {
		// Collapsed edge on a clipped hexagon: point away from the centre.
		n = math.Vec3{X: (a.x + b.x) / 2, Y: (a.y + b.y) / 2}
	}
	return n.Normalize()
}

// Tessellate replaces the set's pieces. The content rect is used, or the
// output rect (minus its last column) when IncludeShadows is set. On error
// the previous pieces are kept.
func (s *Set) Tessellate(spec GridSpec) error {
	r := s.window.Content
	if s.IncludeShadows {
		r = s.window.Output
		r.Max.X--
	}

	polys, err := Tessellate(spec, r, s.screenWidth())
	if err != nil {
		s.log.Warn("tessellation skipped",
			zap.Stringer("topology", spec.Topology),
			zap.Int("width", r.Dx()),
			zap.Int("height", r.Dy()),
			zap.Error(err),
		)
		return err
	}

	s.Polygons = polys
	s.Thickness = spec.Thickness / s.screenWidth()
	s.totalSides = 0
	for i := range polys {
		s.totalSides += polys[i].NumSides
	}
	s.clips = nil
	s.lastClipInGroup = nil

	s.log.Debug("tessellated",
		zap.Stringer("topology", spec.Topology),
		zap.Int("polygons", len(polys)),
		zap.Int("sides", s.totalSides),
		zap.Float32("thickness", s.Thickness),
	)
	return nil
}
