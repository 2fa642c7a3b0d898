package effects

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// screenSpeed is the base travel of a flying piece for a screen of the
// given width, in pixels.
func screenSpeed(screenWidth int, rng *rand.Rand) float32 {
	factor := 0.8 * math.DefaultZCamera * float32(screenWidth)
	return factor / 10 * (0.2 + rng.Float32())
}

func randomAxis(rng *rand.Rand) math.Vec3 {
	return math.Vec3{X: rng.Float32(), Y: rng.Float32(), Z: rng.Float32()}
}

// Shatter breaks the window like glass; most shards drop off the bottom of
// the screen while the rest fade in place.
type Shatter struct {
	cfg config.ShatterConfig
}

func (sh *Shatter) Name() string            { return "shatter" }
func (sh *Shatter) DurationFactor() float32 { return DurationFactor }

func (sh *Shatter) Grid(s *polygon.Set) polygon.GridSpec {
	return polygon.GridSpec{
		Topology:  polygon.Glass,
		Spokes:    sh.cfg.Spokes,
		Tiers:     sh.cfg.Tiers,
		Thickness: sh.cfg.Thickness,
	}
}

func (sh *Shatter) Init(s *polygon.Set, rng *rand.Rand) {
	screenH := float32(s.Screen().Height)
	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = math.Vec3{Z: 1}
		p.FinalRelPos = math.Vec3{}
		p.FinalRotation = 0
		if rng.Float32() < sh.cfg.FallFraction {
			p.FinalRelPos.Y = screenH - p.CenterStart.Y
			p.FinalRotation = rng.Float32()*240 - 120
		}
	}
	s.AllFadeDuration = 0.3
	s.BackAndSidesFadeDuration = 0.2
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}

// Explode throws the pieces outwards and towards the viewer.
type Explode struct {
	cfg config.ExplodeConfig
}

func (e *Explode) Name() string { return "explode" }

func (e *Explode) Grid(s *polygon.Set) polygon.GridSpec {
	topo, err := polygon.ParseTopology(e.cfg.Tessellation)
	if err != nil {
		topo = polygon.Rectangles
	}
	spec := polygon.GridSpec{
		Topology:   topo,
		GridWidth:  e.cfg.GridX,
		GridHeight: e.cfg.GridY,
		Thickness:  e.cfg.Thickness,
	}
	if topo == polygon.Glass {
		spec.Spokes = max(1, e.cfg.GridX/4)
		spec.Tiers = max(1, e.cfg.GridY/2)
	}
	return spec
}

func (e *Explode) Init(s *polygon.Set, rng *rand.Rand) {
	sqrt2 := math32.Sqrt2
	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = randomAxis(rng)

		speed := screenSpeed(s.Screen().Width, rng)
		xx := 2 * (p.CenterRel[0] - 0.5)
		yy := 2 * (p.CenterRel[1] - 0.5)

		distToCenter := math32.Max(0, (sqrt2-math32.Hypot(xx, yy))/sqrt2)
		const zBias = 0.1

		p.FinalRelPos = math.Vec3{
			X: speed * 2 * (xx + 0.5*(rng.Float32()-0.5)),
			Y: speed * 2 * (yy + 0.5*(rng.Float32()-0.5)),
			Z: speed * 10 * (zBias + rng.Float32()*math32.Sqrt(distToCenter)),
		}
		p.FinalRotation = rng.Float32()*540 - 270
	}
	s.AllFadeDuration = 0.3
	s.BackAndSidesFadeDuration = 0.2
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}

// LeafSpread lets small pieces drift away row by row, each fading on its
// own schedule while fluttering sideways.
type LeafSpread struct {
	cfg config.LeafSpreadConfig
}

const (
	leafFadeDuration = 0.26
	leafLife         = 0.4
	leafSpread       = 3.5
	leafRandYMax     = 0.07
)

func (l *LeafSpread) Name() string { return "leafspread" }

func (l *LeafSpread) Grid(s *polygon.Set) polygon.GridSpec {
	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  l.cfg.GridX,
		GridHeight: l.cfg.GridY,
		Thickness:  l.cfg.Thickness,
	}
}

func (l *LeafSpread) Init(s *polygon.Set, rng *rand.Rand) {
	win := s.Window().Content
	winFacX := float32(win.Dx()) / 800
	winFacY := float32(win.Dy()) / 800
	winFacZ := float32(win.Dx()+win.Dy()) / 2 / 800

	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = randomAxis(rng)

		speed := screenSpeed(s.Screen().Width, rng)
		xx := 2 * (p.CenterRel[0] - 0.5)
		yy := 2 * (p.CenterRel[1] - 0.5)

		p.FinalRelPos = math.Vec3{
			X: speed * winFacX * leafSpread * (xx + 0.5*(rng.Float32()-0.5)),
			Y: speed * winFacY * leafSpread * (yy + 0.5*(rng.Float32()-0.5)),
			Z: speed * winFacZ * 7 * ((rng.Float32() - 0.5) / 0.5),
		}

		p.MoveStart = p.CenterRel[1]*(1-leafFadeDuration-leafRandYMax) + leafRandYMax*rng.Float32()
		p.MoveDuration = 1
		p.FadeStart = min(p.MoveStart+leafLife, 1-leafFadeDuration)
		p.FadeDuration = leafFadeDuration
		p.FinalRotation = 150

		p.Effect = &LeafParams{
			Amplitude: 4 + 8*rng.Float32(),
			Phase:     2 * math32.Pi * rng.Float32(),
		}
	}
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerPolygon
}

// StepPolygons adds each leaf's sideways flutter on top of its straight
// flight. The flutter grows with the leaf's own move progress.
func (l *LeafSpread) StepPolygons(s *polygon.Set, forwardProgress float32) {
	for i := range s.Polygons {
		p := &s.Polygons[i]
		lp, ok := p.Effect.(*LeafParams)
		if !ok {
			continue
		}
		mp := polygon.MoveProgress(p, forwardProgress)
		lp.Offset = lp.Amplitude * mp * math32.Sin(lp.Phase+4*math32.Pi*mp)
		p.Center.X += lp.Offset
	}
}
