package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/Faultbox/polyfx/internal/anim"
	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/internal/effects"
	"github.com/Faultbox/polyfx/internal/engine/debug"
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/internal/engine/texture"
	"github.com/Faultbox/polyfx/internal/scene"
	"github.com/Faultbox/polyfx/pkg/math"
)

// options holds the flags shared by the effect commands.
type options struct {
	config  string
	screenW int
	screenH int
	event   string
	seed    int64
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "YAML config file")
	fs.IntVar(&o.screenW, "screen-w", 1280, "Screen width")
	fs.IntVar(&o.screenH, "screen-h", 1024, "Screen height")
	fs.StringVar(&o.event, "event", "close", "Window event")
	fs.Int64Var(&o.seed, "seed", 1, "Seed for effect randomness")
}

// session is one effect prepared on the default scene.
type session struct {
	cfg   *config.Config
	scene scene.Scene
	anim  *anim.Animation
}

func (o *options) open(fs *flag.FlagSet) (*session, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("usage: meshtool %s [options] <effect>", fs.Name())
	}
	cfg, err := config.LoadFile(o.config)
	if err != nil {
		return nil, err
	}
	event, err := anim.ParseWindowEvent(o.event)
	if err != nil {
		return nil, err
	}
	eff, err := effects.New(fs.Arg(0), cfg.Effects)
	if err != nil {
		return nil, err
	}

	sc := scene.NewScene(o.screenW, o.screenH)
	a, err := anim.New(1, event, eff, sc.Window, sc.Screen, cfg.Effects, rand.New(rand.NewSource(o.seed)))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, scene: sc, anim: a}, nil
}

// host returns a headless host counting the faces drawn.
func (s *session) host() (*scene.Host, *faceCounter) {
	fc := &faceCounter{}
	return &scene.Host{Scene: s.scene, Target: fc, ClipRows: s.cfg.Engine.ClipRows}, fc
}

func cmdEffects(out io.Writer) error {
	cfg := config.Default()
	for _, name := range effects.Names() {
		e, err := effects.New(name, cfg.Effects)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s x%.2f\n", name, effects.Scale(e))
	}
	return nil
}

func cmdMesh(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mesh", flag.ContinueOnError)
	var o options
	o.register(fs)
	verbose := fs.Bool("v", false, "List every piece")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := o.open(fs)
	if err != nil {
		return err
	}

	s := sess.anim.Set
	fmt.Fprintf(out, "Effect:    %s\n", sess.anim.Effect.Name())
	fmt.Fprintf(out, "Window:    %v\n", s.Window().Content)
	fmt.Fprintf(out, "Duration:  %v\n", sess.anim.Duration())
	fmt.Fprintf(out, "Pieces:    %d\n", len(s.Polygons))
	fmt.Fprintf(out, "Sides:     %d\n", s.TotalSides())
	fmt.Fprintf(out, "Thickness: %.4f\n", s.Thickness)
	fmt.Fprintf(out, "Depth:     %v  Lighting: %v  Shadows: %v\n", s.DepthTest, s.Lighting, s.IncludeShadows)

	if !*verbose {
		return nil
	}
	fmt.Fprintln(out)
	for i := range s.Polygons {
		p := &s.Polygons[i]
		fmt.Fprintf(out, "%4d  sides=%d centre=(%.1f,%.1f) r=%.1f move=%.2f+%.2f fade=%.2f+%.2f\n",
			i, p.NumSides, p.CenterStart.X, p.CenterStart.Y, p.BoundingRadius,
			p.MoveStart, p.MoveDuration, p.FadeStart, p.FadeDuration)
	}
	return nil
}

func cmdDamage(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("damage", flag.ContinueOnError)
	var o options
	o.register(fs)
	frames := fs.Int("frames", 10, "Number of frame steps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", *frames)
	}
	sess, err := o.open(fs)
	if err != nil {
		return err
	}

	h, fc := sess.host()
	step := sess.anim.Duration() / time.Duration(*frames)
	for i := 0; i <= *frames; i++ {
		if i > 0 {
			sess.anim.Advance(step)
		}
		fc.faces = 0
		damage := sess.anim.Frame(h)
		fmt.Fprintf(out, "frame %3d  progress %.3f  faces %5d  damage %v\n",
			i, sess.anim.Progress(), fc.faces, damage)
	}
	return nil
}

func cmdPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	var o options
	o.register(fs)
	frames := fs.Int("frames", 4, "Number of frame steps")
	dir := fs.String("o", "preview", "Output directory")
	outline := fs.Bool("damage", false, "Outline the damage box")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", *frames)
	}
	sess, err := o.open(fs)
	if err != nil {
		return err
	}

	c := sess.scene.Window.Content
	surface, err := texture.LoadSurface(sess.cfg.Engine.SurfaceImage, c.Dx(), c.Dy(), sess.anim.Effect.Name())
	if err != nil {
		return err
	}

	shots := debug.NewSnapshots(*dir, sess.anim.Effect.Name())
	h, _ := sess.host()
	step := sess.anim.Duration() / time.Duration(*frames)
	for i := 0; i <= *frames; i++ {
		if i > 0 {
			sess.anim.Advance(step)
		}
		damage := sess.anim.Frame(h)
		img := rasterize(sess.anim.Set, sess.scene, sess.anim.Progress(), surface)
		if *outline {
			strokeRect(img, damage, damageColor)
		}
		name, err := shots.Save(img)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, name)
	}
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	path := fs.String("config", "", "YAML config file")
	dest := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.LoadFile(*path)
	if err != nil {
		return err
	}
	if *dest != "" {
		if err := cfg.SaveTo(*dest); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", *dest)
		return nil
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// faceCounter is a headless backend that only counts faces.
type faceCounter struct {
	faces int
}

func (f *faceCounter) BeginDraw(polygon.DrawState)      {}
func (f *faceCounter) EndDraw()                         {}
func (f *faceCounter) PushTransform(math.Mat4)          {}
func (f *faceCounter) PopTransform()                    {}
func (f *faceCounter) SetClipPlanes([4][4]float64)      {}
func (f *faceCounter) DisableClipPlanes()               {}
func (f *faceCounter) SetPaint(polygon.PaintAttributes) {}
func (f *faceCounter) DrawFace(polygon.Face)            { f.faces++ }
