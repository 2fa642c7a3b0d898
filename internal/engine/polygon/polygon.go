// Package polygon implements the extruded-piece window transition engine:
// tessellation of a window surface into 3D pieces, per-piece motion, the
// incremental clip ledger fed by the host renderer, texture coordinate
// resolution, the two-pass draw and damage box estimation.
//
// All coordinates are screen pixels except depth, which is expressed as a
// fraction of the screen width.
package polygon

import (
	"errors"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/internal/logger"
	"github.com/Faultbox/polyfx/pkg/math"
)

var (
	// ErrDegenerateBounds is returned when the window is too small for the
	// requested topology. No polygons are produced.
	ErrDegenerateBounds = errors.New("polygon: degenerate window bounds")

	// ErrOutOfMemory is returned when a tessellation would exceed MaxPolygons.
	ErrOutOfMemory = errors.New("polygon: polygon buffer limit exceeded")

	// ErrUnknownTopology is returned for an unsupported Topology value.
	ErrUnknownTopology = errors.New("polygon: unknown topology")
)

// MaxPolygons bounds the number of pieces in one set.
const MaxPolygons = 1 << 16

// Topology selects the tessellation pattern.
type Topology int

const (
	Rectangles Topology = iota
	Hexagons
	Triangles
	Glass
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Rectangles:
		return "rectangles"
	case Hexagons:
		return "hexagons"
	case Triangles:
		return "triangles"
	case Glass:
		return "glass"
	}
	return "unknown"
}

// ParseTopology converts a config name into a Topology.
func ParseTopology(name string) (Topology, error) {
	switch name {
	case "rectangles", "rect", "":
		return Rectangles, nil
	case "hexagons", "hex":
		return Hexagons, nil
	case "triangles", "tri":
		return Triangles, nil
	case "glass":
		return Glass, nil
	}
	return Rectangles, ErrUnknownTopology
}

// PerspectiveMode selects how the perspective correction skew is derived.
type PerspectiveMode int

const (
	PerspectiveNone PerspectiveMode = iota
	PerspectivePerPolygon
	PerspectivePerWindow
)

// ParsePerspective converts a config name into a PerspectiveMode.
// Unknown names disable correction.
func ParsePerspective(name string) PerspectiveMode {
	switch name {
	case "polygon", "per_polygon":
		return PerspectivePerPolygon
	case "window", "per_window":
		return PerspectivePerWindow
	}
	return PerspectiveNone
}

// EffectParams is per-piece state owned by an effect. Implementations are
// tagged by the kind they report.
type EffectParams interface {
	EffectKind() string
}

// PolygonTransformer is implemented by effects that add their own
// transform to every piece. The returned matrix is applied after the
// piece is moved to its centre and depth is unscaled.
type PolygonTransformer interface {
	TransformPolygon(p *Polygon, forwardProgress float32) math.Mat4
}

// Polygon is one extruded piece of the window surface.
type Polygon struct {
	NumSides int

	// Vertices holds the front ring followed by the back ring, relative
	// to the piece centre. Back vertex 2n-1-k sits behind front vertex k.
	Vertices []math.Vec3

	// SideIndices holds four vertex indices per side quad.
	SideIndices []uint16

	// Normals holds the front normal, the back normal and one per side.
	Normals []math.Vec3

	BoundingBox    image.Rectangle
	BoundingRadius float32

	// CenterRel is the piece centre relative to the tessellated rect, in [0,1].
	CenterRel [2]float32

	CenterStart math.Vec3
	Center      math.Vec3

	RotationAngleStart float32
	RotationAngle      float32
	RotationAxis       math.Vec3
	RotationAxisOffset math.Vec3

	FinalRelPos   math.Vec3
	FinalRotation float32

	MoveStart    float32
	MoveDuration float32
	FadeStart    float32
	FadeDuration float32

	Effect EffectParams
}

// FrontNormal returns the normal of the front face.
func (p *Polygon) FrontNormal() math.Vec3 { return p.Normals[0] }

// BackNormal returns the normal of the back face.
func (p *Polygon) BackNormal() math.Vec3 { return p.Normals[1] }

// SideNormal returns the normal of side k.
func (p *Polygon) SideNormal(k int) math.Vec3 { return p.Normals[2+k] }

// Side returns the vertex indices of side quad k.
func (p *Polygon) Side(k int) []uint16 { return p.SideIndices[4*k : 4*k+4] }

// Geometry describes the animated window in screen pixels.
type Geometry struct {
	// Content is the window's input rect.
	Content image.Rectangle
	// Output is the shadow-inclusive output rect.
	Output image.Rectangle
}

// Screen is the size of the screen the window is painted on.
type Screen struct {
	Width, Height int
}

// Set is the per-window engine state for one animation.
type Set struct {
	Polygons []Polygon

	// Thickness is the extrusion depth as a fraction of the screen width.
	Thickness float32

	// AllFadeDuration, unless -1, fades every piece together during the
	// last AllFadeDuration of the animation.
	AllFadeDuration float32

	BackAndSidesFadeDuration float32
	DepthTest                bool
	Lighting                 bool
	Perspective              PerspectiveMode
	IncludeShadows           bool

	// Decelerate selects the eased motion and fade curve.
	Decelerate bool

	// Transformer is optional.
	Transformer PolygonTransformer

	window Geometry
	screen Screen

	clips           []Clip
	clipsPassed     int
	clipsUpdated    bool
	firstUndrawn    int
	lastClipInGroup []int
	drawCalls       int

	totalSides int
	// progress is the forward progress of the last Step.
	progress float32
	log      *zap.Logger
}

// NewSet creates an empty set for a window on the given screen.
func NewSet(win Geometry, screen Screen) *Set {
	return &Set{
		AllFadeDuration: -1,
		window:          win,
		screen:          screen,
		log:             logger.Named("polygon"),
	}
}

// Window returns the geometry the set was created for.
func (s *Set) Window() Geometry { return s.window }

// Screen returns the screen the set was created for.
func (s *Set) Screen() Screen { return s.screen }

// TotalSides returns the sum of NumSides over all polygons, which is also
// the front vertex count every clip sizes its texture coordinates from.
func (s *Set) TotalSides() int { return s.totalSides }

// Clips returns the recorded clip ledger.
func (s *Set) Clips() []Clip { return s.clips }

// ClipsUpdated reports whether the ledger changed during this paint tick.
func (s *Set) ClipsUpdated() bool { return s.clipsUpdated }

// Reset drops all polygons and clips.
func (s *Set) Reset() {
	s.Polygons = nil
	s.totalSides = 0
	s.clips = nil
	s.lastClipInGroup = nil
	s.clipsPassed = 0
	s.clipsUpdated = false
	s.firstUndrawn = 0
	s.drawCalls = 0
}

func (s *Set) screenWidth() float32 {
	if s.screen.Width <= 0 {
		return 1
	}
	return float32(s.screen.Width)
}
