package effects

import (
	"math/rand"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// Glide moves the whole window away from (or towards) the viewer while
// tilting it about its horizontal axis.
type Glide struct {
	name string
	cfg  config.GlideConfig
}

func (g *Glide) Name() string { return g.name }

// Grid uses a single piece. A flat glide also covers the window shadow.
func (g *Glide) Grid(s *polygon.Set) polygon.GridSpec {
	s.IncludeShadows = g.cfg.Thickness < 1e-5
	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  1,
		GridHeight: 1,
		Thickness:  g.cfg.Thickness,
	}
}

func (g *Glide) Init(s *polygon.Set, rng *rand.Rand) {
	dist := g.cfg.AwayPosition * 0.8 * math.DefaultZCamera * float32(s.Screen().Width)
	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = math.Vec3{X: 1}
		p.FinalRelPos = math.Vec3{Z: dist}
		p.FinalRotation = g.cfg.AwayAngle
	}
	s.AllFadeDuration = 1
	s.BackAndSidesFadeDuration = 0.2
	s.Lighting = true
	s.Decelerate = true
	s.Perspective = polygon.PerspectivePerPolygon
}
