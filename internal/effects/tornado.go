package effects

import (
	"math/rand"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// Tornado whirls the pieces around the window's vertical centre line while
// lifting them, bottom rows first.
type Tornado struct {
	cfg config.TornadoConfig
}

func (tn *Tornado) Name() string { return "tornado" }

func (tn *Tornado) Grid(s *polygon.Set) polygon.GridSpec {
	return polygon.GridSpec{
		Topology:   polygon.Rectangles,
		GridWidth:  tn.cfg.GridX,
		GridHeight: tn.cfg.GridY,
		Thickness:  tn.cfg.Thickness,
	}
}

func (tn *Tornado) Init(s *polygon.Set, rng *rand.Rand) {
	win := s.Window().Content
	axisX := float32(win.Min.X) + float32(win.Dx())/2
	lift := -tn.cfg.Rise * float32(win.Dy())

	for i := range s.Polygons {
		p := &s.Polygons[i]
		p.RotationAxis = randomAxis(rng)
		p.FinalRotation = rng.Float32()*180 - 90
		p.FinalRelPos = math.Vec3{}

		p.MoveStart = (1 - p.CenterRel[1]) * 0.3
		p.MoveDuration = 0.7
		p.Effect = &TornadoParams{
			AxisX: axisX,
			Spin:  tn.cfg.Turns * 360 * (0.75 + 0.5*rng.Float32()),
			Lift:  lift * (0.5 + p.CenterRel[1]),
		}
	}
	s.AllFadeDuration = 0.3
	s.BackAndSidesFadeDuration = 0.2
	s.DepthTest = true
	s.Lighting = true
	s.Perspective = polygon.PerspectivePerWindow
}

// StepPolygons advances every piece's turn and rise.
func (tn *Tornado) StepPolygons(s *polygon.Set, forwardProgress float32) {
	for i := range s.Polygons {
		p := &s.Polygons[i]
		tp, ok := p.Effect.(*TornadoParams)
		if !ok {
			continue
		}
		mp := polygon.MoveProgress(p, forwardProgress)
		tp.Angle = tp.Spin * mp
		tp.Rise = tp.Lift * mp
	}
}

// TransformPolygon turns the piece about the window's vertical axis. The
// piece frame has its origin at the piece centre.
func (tn *Tornado) TransformPolygon(p *polygon.Polygon, forwardProgress float32) math.Mat4 {
	tp, ok := p.Effect.(*TornadoParams)
	if !ok {
		return math.Identity()
	}
	dx := tp.AxisX - p.Center.X
	return math.Translate(dx, tp.Rise, 0).
		Mul(math.RotateDegrees(tp.Angle, math.Vec3{Y: 1})).
		Mul(math.Translate(-dx, 0, 0))
}
