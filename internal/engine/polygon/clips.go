package polygon

import (
	"image"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// contentEpsilon grows a clip covering the whole content rect so grid
// seams on the window border are not clipped away.
const contentEpsilon = 0.1

// ClipInput is one damage rectangle submitted by the host renderer together
// with the texture matrix mapping screen pixels to texture coordinates.
type ClipInput struct {
	Box       image.Rectangle
	TexMatrix matrix.Matrix
}

// Clip is a recorded ledger entry.
type Clip struct {
	Box       image.Rectangle
	BoxF      rect.Rect
	TexMatrix matrix.Matrix

	// Intersecting lists the polygons overlapping Box, in draw order.
	Intersecting []int
	// TexCoords holds two floats per vertex, front ring then back ring,
	// for each intersecting polygon in turn.
	TexCoords []float32

	resolved bool
}

func newClip(in ClipInput, content image.Rectangle) Clip {
	c := Clip{
		Box:       in.Box,
		TexMatrix: in.TexMatrix,
		BoxF: rect.Rect{
			LLx: float64(in.Box.Min.X),
			LLy: float64(in.Box.Min.Y),
			URx: float64(in.Box.Max.X),
			URy: float64(in.Box.Max.Y),
		},
	}
	if in.Box == content {
		c.BoxF.LLx -= contentEpsilon
		c.BoxF.LLy -= contentEpsilon
		c.BoxF.URx += contentEpsilon
		c.BoxF.URy += contentEpsilon
	}
	return c
}

// PrePreparePaint starts a paint tick.
func (s *Set) PrePreparePaint() {
	s.clipsPassed = 0
	s.clipsUpdated = false
}

// PrePaintWindow starts painting the window within a tick.
func (s *Set) PrePaintWindow() {
	s.drawCalls = 0
	s.firstUndrawn = 0
}

// PostPaintWindow drops clips recorded this tick that no draw consumed.
func (s *Set) PostPaintWindow() {
	if s.clipsUpdated && s.drawCalls == 0 && s.firstUndrawn < len(s.clips) {
		s.log.Debug("trimming undrawn clips",
			zap.Int("clips", len(s.clips)),
			zap.Int("kept", s.firstUndrawn),
		)
		s.truncateClips(s.firstUndrawn)
	}
}

// RecordClips feeds the clips of one repaint sub-call into the ledger.
// Clips identical to the ones recorded at the same position in earlier
// frames are reused; the first difference discards the rest of the ledger.
func (s *Set) RecordClips(clips []ClipInput) {
	for i, in := range clips {
		if s.clipsPassed < len(s.clips) && s.clips[s.clipsPassed].matches(in) {
			s.clipsPassed++
			continue
		}

		s.truncateClips(s.clipsPassed)
		for _, rest := range clips[i:] {
			s.clips = append(s.clips, newClip(rest, s.window.Content))
		}
		s.clipsPassed = len(s.clips)
		s.clipsUpdated = true
		return
	}
}

func (c *Clip) matches(in ClipInput) bool {
	return c.Box == in.Box && c.TexMatrix == in.TexMatrix
}

func (s *Set) truncateClips(n int) {
	for i := n; i < len(s.clips); i++ {
		s.clips[i] = Clip{}
	}
	s.clips = s.clips[:n]
	if n == 0 {
		s.lastClipInGroup = s.lastClipInGroup[:0]
	}
}
