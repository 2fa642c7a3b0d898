package renderer

import (
	"github.com/Faultbox/polyfx/internal/engine/polygon"
	"github.com/Faultbox/polyfx/pkg/math"
)

// floatsPerVertex is the interleaved layout: position, texcoord, normal.
const floatsPerVertex = 3 + 2 + 3

// transformStack mirrors the fixed-function model view stack: every push
// multiplies onto the current top.
type transformStack struct {
	base  math.Mat4
	stack []math.Mat4
}

func (s *transformStack) reset(base math.Mat4) {
	s.base = base
	s.stack = s.stack[:0]
}

func (s *transformStack) top() math.Mat4 {
	if len(s.stack) == 0 {
		return s.base
	}
	return s.stack[len(s.stack)-1]
}

func (s *transformStack) push(m math.Mat4) {
	s.stack = append(s.stack, s.top().Mul(m))
}

func (s *transformStack) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// appendFace appends f's vertices in fan order to dst in the interleaved
// layout. Missing texture coordinates are zero.
func appendFace(dst []float32, f polygon.Face) []float32 {
	emit := func(i int) {
		v := f.Vertices[i]
		var s, t float32
		if 2*i+1 < len(f.TexCoords) {
			s, t = f.TexCoords[2*i], f.TexCoords[2*i+1]
		}
		dst = append(dst, v.X, v.Y, v.Z, s, t, f.Normal.X, f.Normal.Y, f.Normal.Z)
	}
	if f.Indices == nil {
		for i := range f.Vertices {
			emit(i)
		}
		return dst
	}
	for _, i := range f.Indices {
		emit(int(i))
	}
	return dst
}

// appendLines appends xyz triplets as untextured vertices facing the viewer.
func appendLines(dst []float32, xyz []float32) []float32 {
	for i := 0; i+2 < len(xyz); i += 3 {
		dst = append(dst, xyz[i], xyz[i+1], xyz[i+2], 0, 0, 0, 0, 1)
	}
	return dst
}

// planeUniforms flattens clip plane equations for a vec4 array uniform.
func planeUniforms(planes [4][4]float64) [16]float32 {
	var out [16]float32
	for i, p := range planes {
		for j, v := range p {
			out[4*i+j] = float32(v)
		}
	}
	return out
}
