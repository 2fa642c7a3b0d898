package effects

import (
	"math/rand"

	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

const (
	dominoGridSize     = 20
	dominoMinCellSize  = 30
	dominoRiseRandMax  = 0.2
	dominoAspect       = 1.25
	dominoFadeDuration = 0.18
	dominoRiseDuration = 0.2
)

// Domino knocks the window over as rows of falling pieces. The razr
// variant flips square pieces about their leading edge instead.
type Domino struct {
	dir  direction
	razr bool

	// Filled in by Grid.
	gridX, gridY int
	cellW, cellH float32
}

func (d *Domino) Name() string {
	if d.razr {
		return "razr"
	}
	return "domino"
}

func (d *Domino) aspect() float32 {
	if d.razr {
		return 1
	}
	return dominoAspect
}

// fallGridSize is the number of cells along the falling direction.
func (d *Domino) fallGridSize() int {
	if d.dir == dirUp || d.dir == dirDown {
		return d.gridY
	}
	return d.gridX
}

// Grid sizes the pieces so they stay at least dominoMinCellSize across the
// falling direction and keep the piece aspect ratio along it.
func (d *Domino) Grid(s *polygon.Set) polygon.GridSpec {
	win := s.Window().Content
	w, h := float32(win.Dx()), float32(win.Dy())

	if d.dir == dirUp || d.dir == dirDown {
		d.gridX, d.gridY = dominoCells(w, h, d.aspect())
		d.cellW, d.cellH = w/float32(d.gridX), h/float32(d.gridY)
	} else {
		d.gridY, d.gridX = dominoCells(h, w, d.aspect())
		d.cellW, d.cellH = w/float32(d.gridX), h/float32(d.gridY)
	}

	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  d.gridX,
		GridHeight: d.gridY,
		Thickness:  min(d.cellW, d.cellH) / 3.5,
	}
}

// dominoCells returns the cell counts across and along the falling
// direction for a window of the given extents.
func dominoCells(across, along, aspect float32) (int, int) {
	if across <= 0 {
		return 1, 1
	}
	minCell := min(float32(dominoMinCellSize), across)
	n := dominoGridSize
	if across/dominoGridSize < minCell {
		n = max(1, int(across/minCell))
	}
	cell := across / float32(n)
	m := max(1, int(along/(cell*aspect)))
	return n, m
}

func (d *Domino) Init(s *polygon.Set, rng *rand.Rand) {
	if d.gridX == 0 || d.gridY == 0 {
		d.Grid(s)
	}
	thickness := min(d.cellW, d.cellH) / 3.5
	halfW, halfH := d.cellW/2, d.cellH/2

	var axis math.Vec3
	axisOff := math.Vec3{Z: thickness / 2}
	var pos math.Vec3
	columns := d.gridX

	switch d.dir {
	case dirDown:
		axis.X = -1
		if d.razr {
			axisOff.Y = -halfH
		} else {
			pos.Y = -(halfH + thickness)
			pos.Z = halfH - thickness/2
		}
	case dirLeft:
		axis.Y = -1
		if d.razr {
			axisOff.X = halfW
		} else {
			pos.X = halfW + thickness
			pos.Z = halfW - thickness/2
		}
		columns = d.gridY
	case dirUp:
		axis.X = 1
		if d.razr {
			axisOff.Y = halfH
		} else {
			pos.Y = halfH + thickness
			pos.Z = halfH - thickness/2
		}
	case dirRight:
		axis.Y = 1
		if d.razr {
			axisOff.X = -halfW
		} else {
			pos.X = -(halfW + thickness)
			pos.Z = halfW - thickness/2
		}
		columns = d.gridY
	}

	fallGrid := d.fallGridSize()
	minDistStartEdge := 1 / float32(fallGrid) / 2

	var fadeDuration, riseDuration float32
	if d.razr {
		riseDuration = (1 - dominoRiseRandMax) / float32(fallGrid)
		fadeDuration = riseDuration / 2
	} else {
		fadeDuration = dominoFadeDuration
		riseDuration = dominoRiseDuration
	}

	seeds := make([]float32, columns)
	for i := range seeds {
		seeds[i] = rng.Float32()
	}

	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = axis
		p.FinalRelPos = pos

		var distStartEdge, distPerpEdge float32
		switch d.dir {
		case dirUp:
			distStartEdge, distPerpEdge = p.CenterRel[1], p.CenterRel[0]
		case dirRight:
			distStartEdge, distPerpEdge = 1-p.CenterRel[0], p.CenterRel[1]
		case dirDown:
			distStartEdge, distPerpEdge = 1-p.CenterRel[1], p.CenterRel[0]
		case dirLeft:
			distStartEdge, distPerpEdge = p.CenterRel[0], p.CenterRel[1]
		}

		col := min(columns-1, max(0, int(distPerpEdge*float32(columns))))
		riseRand := seeds[col] * dominoRiseRandMax

		mult := float32(1)
		if fallGrid > 1 {
			mult = (distStartEdge - minDistStartEdge) / (1 - 2*minDistStartEdge)
		}

		p.MoveDuration = riseDuration
		p.MoveStart = mult*(1-riseDuration-dominoRiseRandMax) + riseRand
		if d.razr {
			p.FadeStart = p.MoveStart + riseDuration/2
			p.FinalRotation = -180
			p.RotationAxisOffset = axisOff
		} else {
			p.FadeStart = p.MoveStart + riseDuration - riseRand + 0.03
			p.FinalRotation = -90
		}
		p.FadeStart = min(p.FadeStart, 1-fadeDuration)
		p.FadeDuration = fadeDuration
	}
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}
