// Package anim drives polygon effects over a window's lifetime events:
// it turns elapsed time into forward progress and runs the per-frame
// paint sequence against a host renderer.
package anim

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/effects"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/logger"
)

// WindowEvent is the window state change an animation plays for.
type WindowEvent int

const (
	Close WindowEvent = iota
	Open
	Minimize
	Unminimize
	Shade
	Unshade
	Focus
)

var eventNames = [...]string{"close", "open", "minimize", "unminimize", "shade", "unshade", "focus"}

func (e WindowEvent) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// ParseWindowEvent converts a name into a WindowEvent.
func ParseWindowEvent(name string) (WindowEvent, error) {
	for i, n := range eventNames {
		if n == name {
			return WindowEvent(i), nil
		}
	}
	return Close, fmt.Errorf("anim: unknown window event %q", name)
}

// Reversed reports whether effects play backwards for e. Effects are
// written for windows going away, so appearing windows run them in
// reverse.
func (e WindowEvent) Reversed() bool {
	switch e {
	case Open, Unminimize, Unshade, Focus:
		return true
	}
	return false
}

// WindowID identifies a window in the host.
type WindowID uint32

// Host is the renderer an animation paints through for one frame.
type Host interface {
	// ClipBatches returns this repaint's damage clips, one batch per draw
	// call.
	ClipBatches() [][]polygon.ClipInput
	Backend() polygon.Backend
	Paint() polygon.PaintAttributes
	Viewport() polygon.Viewport
	Projection() polygon.Projection
}

// Animation is one effect playing on one window.
type Animation struct {
	ID     WindowID
	Event  WindowEvent
	Effect effects.Effect
	Set    *polygon.Set

	total     time.Duration
	remaining time.Duration
	damage    polygon.DamageBox
	log       *zap.Logger
}

// New prepares an animation of eff for the window. The configured duration
// is stretched by the effect's duration factor.
func New(id WindowID, event WindowEvent, eff effects.Effect, win polygon.Geometry, screen polygon.Screen,
	cfg config.EffectsConfig, rng *rand.Rand) (*Animation, error) {
	s := polygon.NewSet(win, screen)
	if err := effects.Setup(eff, s, rng, cfg); err != nil {
		return nil, fmt.Errorf("window %d: %w", id, err)
	}

	total := time.Duration(float32(cfg.Duration) * effects.Scale(eff))
	a := &Animation{
		ID:        id,
		Event:     event,
		Effect:    eff,
		Set:       s,
		total:     total,
		remaining: total,
		log:       logger.Named("anim"),
	}
	a.log.Debug("animation created",
		zap.Uint32("window", uint32(id)),
		zap.Stringer("event", event),
		zap.String("effect", eff.Name()),
		zap.Duration("duration", total),
	)
	return a, nil
}

// Duration returns the total play time.
func (a *Animation) Duration() time.Duration { return a.total }

// Remaining returns the time left to play.
func (a *Animation) Remaining() time.Duration { return a.remaining }

// Done reports whether the animation has finished.
func (a *Animation) Done() bool { return a.remaining <= 0 }

// Advance consumes dt of play time and reports whether the animation has
// finished.
func (a *Animation) Advance(dt time.Duration) bool {
	a.remaining -= dt
	if a.remaining < 0 {
		a.remaining = 0
	}
	return a.Done()
}

// Progress returns the effect's forward progress in [0,1].
func (a *Animation) Progress() float32 {
	var p float32 = 1
	if a.total > 0 {
		p = 1 - float32(a.remaining)/float32(a.total)
	}
	p = min(max(p, 0), 1)
	if a.Event.Reversed() {
		p = 1 - p
	}
	return p
}

// Step moves every piece to its pose at the current progress.
func (a *Animation) Step() {
	fp := a.Progress()
	a.Set.Step(fp)
	if st, ok := a.Effect.(effects.Stepper); ok {
		st.StepPolygons(a.Set, fp)
	}
}

// Frame runs one paint tick through h and returns the screen region the
// frame touches.
func (a *Animation) Frame(h Host) image.Rectangle {
	s := a.Set
	s.PrePreparePaint()
	a.Step()

	fp := a.Progress()
	s.PrePaintWindow()
	for _, batch := range h.ClipBatches() {
		s.RecordClips(batch)
		s.Draw(h.Backend(), h.Paint(), fp, h.Viewport())
	}
	s.PostPaintWindow()

	a.damage.Reset()
	s.UpdateBoundingBox(h.Projection(), &a.damage)
	return a.damage.Rect()
}

// Damage returns the damage box of the last frame.
func (a *Animation) Damage() *polygon.DamageBox { return &a.damage }
