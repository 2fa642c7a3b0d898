// Package effects configures polygon sets for the individual window
// transitions: the tessellation each one uses, every piece's final pose and
// timing, and the set's draw flags.
package effects

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/logger"
)

// ErrUnknownEffect is returned when no effect is registered under a name.
var ErrUnknownEffect = errors.New("effects: unknown effect")

// DurationFactor stretches effects whose pieces read as finishing early.
const DurationFactor = 1.43

// Effect prepares a polygon set for one animation.
type Effect interface {
	Name() string

	// Grid returns the tessellation for the set's window. It may set
	// flags on s that tessellation reads, such as IncludeShadows.
	Grid(s *polygon.Set) polygon.GridSpec

	// Init assigns every piece its final pose and timing and sets the
	// set-level draw flags. It runs after tessellation.
	Init(s *polygon.Set, rng *rand.Rand)
}

// Stepper is implemented by effects that keep per-piece state in step with
// the animation. StepPolygons runs after the standard motion step.
type Stepper interface {
	StepPolygons(s *polygon.Set, forwardProgress float32)
}

// DurationScaler is implemented by effects that lengthen the configured
// animation duration.
type DurationScaler interface {
	DurationFactor() float32
}

// Scale returns the duration factor of e, 1 when it does not scale.
func Scale(e Effect) float32 {
	if ds, ok := e.(DurationScaler); ok {
		return ds.DurationFactor()
	}
	return 1
}

// Setup tessellates s for e, initialises its pieces and applies the
// shared overrides from cfg. When tessellation fails s is left without
// pieces of this effect and the error is returned.
func Setup(e Effect, s *polygon.Set, rng *rand.Rand, cfg config.EffectsConfig) error {
	spec := e.Grid(s)
	if spec.Topology == polygon.Glass && spec.Rand == nil {
		spec.Rand = rng
	}
	if err := s.Tessellate(spec); err != nil {
		return fmt.Errorf("%s: %w", e.Name(), err)
	}

	e.Init(s, rng)

	if cfg.Perspective != "" {
		s.Perspective = polygon.ParsePerspective(cfg.Perspective)
	}
	if cfg.DisableDepthTest {
		s.DepthTest = false
	}
	if cfg.DisableLighting {
		s.Lighting = false
	}
	if tr, ok := e.(polygon.PolygonTransformer); ok {
		s.Transformer = tr
	}

	logger.Named("effects").Info("effect initialised",
		zap.String("effect", e.Name()),
		zap.Stringer("topology", spec.Topology),
		zap.Int("polygons", len(s.Polygons)),
		zap.Float32("all_fade", s.AllFadeDuration),
	)
	return nil
}

// direction is a falling or spreading direction in screen space.
type direction int

const (
	dirDown direction = iota
	dirUp
	dirLeft
	dirRight
)

// parseDirection maps a config name to a direction. "auto" and unknown
// names fall down.
func parseDirection(name string) direction {
	switch name {
	case "up":
		return dirUp
	case "left":
		return dirLeft
	case "right":
		return dirRight
	}
	return dirDown
}

func (d direction) String() string {
	switch d {
	case dirUp:
		return "up"
	case dirLeft:
		return "left"
	case dirRight:
		return "right"
	}
	return "down"
}
