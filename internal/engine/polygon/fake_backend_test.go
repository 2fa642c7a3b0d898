package polygon

import (
	"github.com/Faultbox/polyfx/pkg/math"
)

// recordedFace is a face drawn by the recording backend, with the state it
// was drawn under.
type recordedFace struct {
	Face
	opacity   float32
	transform math.Mat4
	planes    [4][4]float64
}

// recordingBackend captures draw commands for inspection.
type recordingBackend struct {
	begins  []DrawState
	ends    int
	faces   []recordedFace
	paints  []PaintAttributes
	stack   []math.Mat4
	planes  [4][4]float64
	clipped bool
	paint   PaintAttributes
	pushes  int
}

func (b *recordingBackend) BeginDraw(state DrawState) { b.begins = append(b.begins, state) }
func (b *recordingBackend) EndDraw()                  { b.ends++ }

func (b *recordingBackend) PushTransform(m math.Mat4) {
	b.stack = append(b.stack, m)
	b.pushes++
}

func (b *recordingBackend) PopTransform() { b.stack = b.stack[:len(b.stack)-1] }

func (b *recordingBackend) SetClipPlanes(planes [4][4]float64) {
	b.planes = planes
	b.clipped = true
}

func (b *recordingBackend) DisableClipPlanes() { b.clipped = false }

func (b *recordingBackend) SetPaint(attrib PaintAttributes) {
	b.paint = attrib
	b.paints = append(b.paints, attrib)
}

func (b *recordingBackend) DrawFace(f Face) {
	rf := recordedFace{Face: f, opacity: b.paint.Opacity, planes: b.planes}
	if len(b.stack) > 0 {
		rf.transform = b.stack[len(b.stack)-1]
	}
	b.faces = append(b.faces, rf)
}

// frontFaces returns the front faces, one per drawn polygon, in draw order.
func (b *recordingBackend) frontFaces() []recordedFace {
	var out []recordedFace
	for _, f := range b.faces {
		if f.Indices == nil && f.Normal.Z > 0 {
			out = append(out, f)
		}
	}
	return out
}
