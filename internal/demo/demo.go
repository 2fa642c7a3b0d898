// Package demo runs effects on a stand-in window in an SDL2 window: keys
// trigger window events and the selected effect plays on the next one.
package demo

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/anim"
	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/effects"
	"github.com/Faultbox/polyfx/internal/engine/debug"
	"github.com/Faultbox/polyfx/internal/engine/input"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/engine/renderer"
	"github.com/Faultbox/polyfx/internal/engine/texture"
	"github.com/Faultbox/polyfx/internal/engine/window"
	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/internal/scene"
)

// demoWindow is the ID of the one animated window.
const demoWindow anim.WindowID = 1

var (
	damageColor = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
	cubeColor   = color.RGBA{R: 0x40, G: 0xff, B: 0x80, A: 0x80}
)

// Demo is the main demo instance.
type Demo struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	scene   scene.Scene
	texture uint32
	// idle draws the window while no animation runs.
	idle *polygon.Set
	// visible is false once a closing event has finished.
	visible bool

	table      *anim.Table
	effects    []string
	current    int
	rng        *rand.Rand
	snapshots  *debug.Snapshots
	showDamage bool

	log *zap.Logger
}

// New creates the window, renderer and window surface.
func New(cfg *config.Config) (*Demo, error) {
	d := &Demo{
		cfg:        cfg,
		visible:    true,
		table:      anim.NewTable(),
		effects:    effects.Names(),
		snapshots:  debug.NewSnapshots(cfg.Engine.SnapshotDir, "polyfx"),
		showDamage: cfg.Engine.ShowDamage,
		log:        logger.Named("demo"),
	}
	for i, name := range d.effects {
		if name == cfg.Effects.Selected {
			d.current = i
		}
	}
	if _, err := effects.New(d.effectName(), cfg.Effects); err != nil {
		return nil, err
	}

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d.rng = rand.New(rand.NewSource(seed))

	var err error
	d.window, err = window.New(window.FromGraphics("polyfx", cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	d.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		d.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	d.input = input.New()

	if err := d.resize(cfg.Graphics.Width, cfg.Graphics.Height); err != nil {
		d.Close()
		return nil, err
	}

	d.log.Info("demo initialized",
		zap.String("effect", d.effectName()),
		zap.Int64("seed", seed),
		zap.Duration("duration", cfg.Effects.Duration),
	)
	return d, nil
}

// Run starts the main loop.
func (d *Demo) Run() error {
	d.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if d.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(d.cfg.Graphics.FPSLimit)
	}

	d.log.Info("starting demo loop")

	for d.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if d.input.Update() {
			d.running = false
			break
		}
		for _, ev := range d.input.Events() {
			if err := d.handle(ev); err != nil {
				return err
			}
		}

		d.update(dt)
		d.render()
		d.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			d.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
	return nil
}

// Close cleans up demo resources.
func (d *Demo) Close() {
	d.log.Info("closing demo")
	renderer.DeleteTexture(d.texture)
	if d.renderer != nil {
		d.renderer.Close()
	}
	if d.window != nil {
		d.window.Close()
	}
}

func (d *Demo) effectName() string {
	return d.effects[d.current]
}

func (d *Demo) handle(ev input.Event) error {
	switch ev.Action {
	case input.ActionQuit:
		d.running = false
	case input.ActionResize:
		return d.resize(ev.Width, ev.Height)
	case input.ActionPlay:
		event, err := anim.ParseWindowEvent(ev.Play)
		if err != nil {
			return err
		}
		d.play(event)
	case input.ActionNextEffect:
		d.current = (d.current + 1) % len(d.effects)
		d.window.SetTitle("polyfx: " + d.effectName())
	case input.ActionPrevEffect:
		d.current = (d.current + len(d.effects) - 1) % len(d.effects)
		d.window.SetTitle("polyfx: " + d.effectName())
	case input.ActionCancel:
		if d.table.Cancel(demoWindow) {
			d.log.Info("animation cancelled")
		}
	case input.ActionToggleDamage:
		d.showDamage = !d.showDamage
	case input.ActionSnapshot:
		d.snapshot()
	case input.ActionMoveWindow:
		if d.table.Len() == 0 {
			d.scene = d.scene.MoveTo(ev.X, ev.Y)
			return d.rebuildIdle()
		}
	}
	return nil
}

// play starts the selected effect for event. Appearing windows become
// visible at once; the effect runs backwards to reveal them.
func (d *Demo) play(event anim.WindowEvent) {
	eff, err := effects.New(d.effectName(), d.cfg.Effects)
	if err != nil {
		d.log.Error("effect unavailable", zap.Error(err))
		return
	}
	a, err := anim.New(demoWindow, event, eff, d.scene.Window, d.scene.Screen, d.cfg.Effects, d.rng)
	if err != nil {
		d.log.Warn("animation not started", zap.Error(err))
		return
	}
	if event.Reversed() {
		d.visible = true
	}
	d.table.Start(a)
	d.log.Info("animation started",
		zap.Stringer("event", event),
		zap.String("effect", eff.Name()),
		zap.Int("pieces", len(a.Set.Polygons)),
	)
}

func (d *Demo) update(dt time.Duration) {
	var closing bool
	if a, ok := d.table.Get(demoWindow); ok {
		closing = !a.Event.Reversed()
	}
	for _, id := range d.table.Advance(dt) {
		d.log.Debug("animation finished", zap.Uint32("window", uint32(id)))
		if closing {
			d.visible = false
		}
	}
}

func (d *Demo) render() {
	d.renderer.Begin()
	proj := d.scene.Projection()
	d.renderer.SetView(proj.ModelView, proj.Projection)
	d.renderer.SetTexture(d.texture)

	host := &scene.Host{Scene: d.scene, Target: d.renderer, ClipRows: d.cfg.Engine.ClipRows}

	a, ok := d.table.Get(demoWindow)
	if !ok {
		if d.visible {
			d.drawIdle(host)
		}
		return
	}

	damage := a.Frame(host)
	if !d.showDamage {
		return
	}
	d.renderer.DrawLines(debug.RectOutline(damage), damageColor, true)
	for i := range a.Set.Polygons {
		d.renderer.DrawLines(debug.CubeWireframe(a.Set.BoundingCube(&a.Set.Polygons[i])), cubeColor, false)
	}
}

// drawIdle paints the resting window as a single flat piece.
func (d *Demo) drawIdle(h *scene.Host) {
	s := d.idle
	s.PrePreparePaint()
	s.Step(0)
	s.PrePaintWindow()
	for _, batch := range h.ClipBatches() {
		s.RecordClips(batch)
		s.Draw(h.Backend(), h.Paint(), 0, h.Viewport())
	}
	s.PostPaintWindow()

	if d.showDamage {
		d.renderer.DrawLines(debug.PieceOutlines(s), damageColor, false)
	}
}

func (d *Demo) resize(width, height int) error {
	d.renderer.Resize(width, height)
	d.scene = scene.NewScene(width, height)
	return d.rebuildIdle()
}

// rebuildIdle regenerates the window surface and the resting piece for
// the current window geometry.
func (d *Demo) rebuildIdle() error {
	c := d.scene.Window.Content
	img, err := texture.LoadSurface(d.cfg.Engine.SurfaceImage, c.Dx(), c.Dy(), "polyfx: "+d.effectName())
	if err != nil {
		return err
	}
	renderer.DeleteTexture(d.texture)
	d.texture = renderer.UploadTexture(img)

	d.idle = polygon.NewSet(d.scene.Window, d.scene.Screen)
	if err := d.idle.Tessellate(polygon.GridSpec{Topology: polygon.Rectangles, GridWidth: 1, GridHeight: 1}); err != nil {
		return fmt.Errorf("idle window: %w", err)
	}
	return nil
}

func (d *Demo) snapshot() {
	pixels, size := d.renderer.ReadPixels()
	name, err := d.snapshots.SavePixels(pixels, size.X, size.Y)
	if err != nil {
		d.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	d.log.Info("snapshot saved", zap.String("file", name))
}
