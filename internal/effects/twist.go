package effects

import (
	"math/rand"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// Blinds turns vertical slats about their own vertical axis.
type Blinds struct {
	cfg config.BlindsConfig
}

func (b *Blinds) Name() string            { return "blinds" }
func (b *Blinds) DurationFactor() float32 { return DurationFactor }

func (b *Blinds) Grid(s *polygon.Set) polygon.GridSpec {
	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  b.cfg.GridX,
		GridHeight: 1,
		Thickness:  b.cfg.Thickness,
	}
}

func (b *Blinds) Init(s *polygon.Set, rng *rand.Rand) {
	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = math.Vec3{Y: 1}
		p.FinalRelPos = math.Vec3{}
		p.FinalRotation = 180 * float32(b.cfg.HalfTwists)
	}
	s.AllFadeDuration = 0.3
	s.BackAndSidesFadeDuration = 0.2
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}

// Helix twists horizontal strips one after another, like a DNA strand.
type Helix struct {
	cfg config.HelixConfig
}

func (h *Helix) Name() string            { return "helix" }
func (h *Helix) DurationFactor() float32 { return DurationFactor }

func (h *Helix) Grid(s *polygon.Set) polygon.GridSpec {
	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  1,
		GridHeight: h.cfg.GridY,
		Thickness:  h.cfg.Thickness,
	}
}

func (h *Helix) Init(s *polygon.Set, rng *rand.Rand) {
	rows := len(s.Polygons)
	if rows == 0 {
		return
	}
	stripH := s.Window().Content.Dy() / rows
	twists := float32(h.cfg.Twists)

	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.FinalRelPos = math.Vec3{}
		if h.cfg.Vertical {
			p.RotationAxis = math.Vec3{Z: 1}
			p.FinalRelPos.Y = -float32(stripH * (i - rows/2))
		} else {
			p.RotationAxis = math.Vec3{Y: 1}
		}

		if h.cfg.Reverse {
			p.FinalRotation = 270 - 2*twists*float32(i)
		} else {
			p.FinalRotation = 2*twists*float32(i) - 270
		}
	}
	s.AllFadeDuration = 0.4
	s.BackAndSidesFadeDuration = 0.2
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}
