package polygon

import (
	"go.uber.org/zap"

	"github.com/Faultbox/polyfx/pkg/math"
)

const (
	// OpaqueThreshold separates the opaque pass from the blended pass.
	OpaqueThreshold = 0.9999
	// invisibleThreshold is the opacity below which a piece is skipped.
	invisibleThreshold = 1e-5
)

// PaintAttributes is the window's paint state for one draw.
type PaintAttributes struct {
	Opacity    float32
	Brightness float32
	Saturation float32
}

// DrawState is the GL state a draw call runs under.
type DrawState struct {
	DepthTest bool
	Lighting  bool
	// Normalize is set for extruded pieces, whose side normals are lit.
	Normalize bool
}

// Face is one flat polygon handed to the backend.
type Face struct {
	Vertices []math.Vec3
	// TexCoords holds two floats per vertex, indexed like Vertices.
	TexCoords []float32
	// Indices selects the vertices to draw; nil draws Vertices in order.
	Indices []uint16
	Normal  math.Vec3
}

// Backend receives the draw commands of the orchestrator.
type Backend interface {
	BeginDraw(state DrawState)
	EndDraw()
	PushTransform(m math.Mat4)
	PopTransform()
	// SetClipPlanes enables four clip planes given as (a, b, c, d)
	// equations in the current transform's object space.
	SetClipPlanes(planes [4][4]float64)
	DisableClipPlanes()
	SetPaint(attrib PaintAttributes)
	DrawFace(f Face)
}

// Viewport is the output device rectangle in screen pixels.
type Viewport struct {
	X, Y, Width, Height int
}

// FadeFactor returns the opacity multiplier for a fade that began
// passedBy progress units ago and lasts duration.
func FadeFactor(passedBy, duration float32, decelerate bool) float32 {
	if passedBy <= invisibleThreshold {
		return 1
	}
	if duration <= 0 {
		return 0
	}
	t := passedBy / duration
	if decelerate {
		return clamp01(1 - Decelerate(t))
	}
	return clamp01(1 - t)
}

// PolygonOpacity returns the opacity of p at forwardProgress given the
// window's base opacity. Per-piece fades apply only while AllFadeDuration
// is exactly -1; any other value fades every piece together.
func (s *Set) PolygonOpacity(p *Polygon, base, forwardProgress float32) float32 {
	if s.AllFadeDuration != -1 {
		return base * FadeFactor(forwardProgress-(1-s.AllFadeDuration), s.AllFadeDuration, s.Decelerate)
	}
	return base * FadeFactor(forwardProgress-p.FadeStart, p.FadeDuration, s.Decelerate)
}

// PolygonTransform returns the model transform of p, excluding the
// perspective correction skew.
func (s *Set) PolygonTransform(p *Polygon, forwardProgress float32) math.Mat4 {
	w := s.screenWidth()
	off := p.RotationAxisOffset

	m := math.Translate(p.Center.X, p.Center.Y, p.Center.Z).
		Mul(math.Scale(1, 1, 1/w))
	if s.Transformer != nil {
		m = m.Mul(s.Transformer.TransformPolygon(p, forwardProgress))
	}
	return m.
		Mul(math.Translate(off.X, off.Y, off.Z)).
		Mul(math.RotateDegrees(p.RotationAngle, p.RotationAxis)).
		Mul(math.Translate(-off.X, -off.Y, -off.Z)).
		Mul(math.Scale(1, 1, w))
}

// skew returns the perspective correction for p, or for the window when p
// is nil.
func (s *Set) skew(p *Polygon, vp Viewport) math.Mat4 {
	var x, y float32
	if p != nil {
		x, y = p.Center.X, p.Center.Y
	} else {
		out := s.window.Output
		x = float32(out.Min.X + out.Dx()/2)
		y = float32(out.Min.Y + out.Dy()/2)
	}
	return math.SkewFor(x, y, float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height))
}

// ClipPlanes returns the plane equations restricting p to the clip box, in
// p's object space.
func ClipPlanes(c *Clip, p *Polygon) [4][4]float64 {
	cx, cy := float64(p.CenterStart.X), float64(p.CenterStart.Y)
	return [4][4]float64{
		{1, 0, 0, -(c.BoxF.LLx - cx)},
		{0, 1, 0, -(c.BoxF.LLy - cy)},
		{-1, 0, 0, c.BoxF.URx - cx},
		{0, -1, 0, c.BoxF.URy - cy},
	}
}

// Draw paints the undrawn clips recorded for this repaint sub-call: opaque
// pieces first, then translucent ones.
func (s *Set) Draw(b Backend, attrib PaintAttributes, forwardProgress float32, vp Viewport) {
	s.drawCalls++

	if s.firstUndrawn < 0 || s.firstUndrawn > len(s.clips) {
		s.log.Debug("draw skipped: first undrawn clip out of range",
			zap.Int("first", s.firstUndrawn),
			zap.Int("clips", len(s.clips)),
		)
		return
	}

	var lastClip int
	if s.clipsUpdated {
		s.resolve()
		lastClip = len(s.clips) - 1
	} else {
		idx := s.drawCalls - 1
		if idx >= len(s.lastClipInGroup) || s.lastClipInGroup[idx] >= len(s.clips) {
			s.log.Debug("draw skipped: no end marker for draw call",
				zap.Int("call", s.drawCalls),
				zap.Int("markers", len(s.lastClipInGroup)),
			)
			return
		}
		lastClip = s.lastClipInGroup[idx]
	}

	thick := s.Thickness > 0
	b.BeginDraw(DrawState{
		DepthTest: s.DepthTest,
		Lighting:  s.Lighting,
		Normalize: thick,
	})

	var windowSkew math.Mat4
	if s.Perspective == PerspectivePerWindow {
		windowSkew = s.skew(nil, vp)
	}

	for pass := 0; pass < 2; pass++ {
		for ci := s.firstUndrawn; ci <= lastClip; ci++ {
			c := &s.clips[ci]
			frontVertices := 0
			for _, pi := range c.Intersecting {
				p := &s.Polygons[pi]
				block := c.TexCoords[4*frontVertices : 4*(frontVertices+p.NumSides)]
				frontVertices += p.NumSides

				opacity := s.PolygonOpacity(p, attrib.Opacity, forwardProgress)
				if opacity < invisibleThreshold {
					continue
				}
				if opaque := opacity >= OpaqueThreshold; opaque != (pass == 0) {
					continue
				}

				var m math.Mat4
				switch s.Perspective {
				case PerspectivePerPolygon:
					m = s.skew(p, vp).Mul(s.PolygonTransform(p, forwardProgress))
				case PerspectivePerWindow:
					m = windowSkew.Mul(s.PolygonTransform(p, forwardProgress))
				default:
					m = s.PolygonTransform(p, forwardProgress)
				}

				s.drawPolygon(b, c, p, m, block, attrib, opacity, forwardProgress, thick)
			}
		}
	}

	b.EndDraw()

	if s.clipsUpdated {
		if len(s.lastClipInGroup) >= s.drawCalls {
			s.lastClipInGroup = s.lastClipInGroup[:s.drawCalls-1]
		}
		s.lastClipInGroup = append(s.lastClipInGroup, lastClip)
	}
	s.firstUndrawn = lastClip + 1
}

func (s *Set) drawPolygon(b Backend, c *Clip, p *Polygon, m math.Mat4, tex []float32,
	attrib PaintAttributes, opacity, forwardProgress float32, thick bool) {
	n := p.NumSides

	b.PushTransform(m)
	b.SetClipPlanes(ClipPlanes(c, p))

	backOpacity := opacity
	fadeBackAndSides := s.BackAndSidesFadeDuration > 0 && forwardProgress <= s.BackAndSidesFadeDuration
	if fadeBackAndSides {
		backOpacity *= forwardProgress / s.BackAndSidesFadeDuration
	}
	paint := attrib
	paint.Opacity = backOpacity
	b.SetPaint(paint)

	backNormal, frontNormal := math.Vec3{Z: -1}, math.Vec3{Z: 1}
	if thick {
		backNormal, frontNormal = p.BackNormal(), p.FrontNormal()
	}

	b.DrawFace(Face{
		Vertices:  p.Vertices[n:],
		TexCoords: tex[2*n:],
		Normal:    backNormal,
	})

	for k := 0; k < n; k++ {
		normal := frontNormal
		if thick {
			normal = p.SideNormal(k)
		}
		b.DrawFace(Face{
			Vertices:  p.Vertices,
			TexCoords: tex,
			Indices:   p.Side(k),
			Normal:    normal,
		})
	}

	if fadeBackAndSides {
		paint.Opacity = opacity
		b.SetPaint(paint)
	}
	b.DrawFace(Face{
		Vertices:  p.Vertices[:n],
		TexCoords: tex[:2*n],
		Normal:    frontNormal,
	})

	b.DisableClipPlanes()
	b.PopTransform()
}
