package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultZCamera is the distance from the eye to the screen plane when the
// screen is mapped to a unit square under a 60 degree field of view.
const DefaultZCamera = 0.866025404

// SkewFactor scales a piece's offset from the viewport centre into the
// perspective correction skew.
const SkewFactor = 1.15

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// ScreenSpace maps pixel coordinates of the output (x, y, w, h) onto the
// unit square at depth z, y pointing down. Depth is left unscaled, which is
// why piece depths are expressed as fractions of the screen width.
func ScreenSpace(x, y, w, h, z float32) Mat4 {
	return Translate(-0.5, -0.5, z).
		Mul(Scale(1/w, -1/h, 1)).
		Mul(Translate(-x, -(y + h), 0))
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateAxis creates a rotation matrix around an arbitrary axis.
// axis should be normalized, angle is in radians.
func RotateAxis(axis Vec3, angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// RotateDegrees rotates by degrees around axis, normalizing the axis first
// the way glRotatef does. A zero axis yields the identity.
func RotateDegrees(degrees float32, axis Vec3) Mat4 {
	if axis.Length() == 0 {
		return Identity()
	}
	return RotateAxis(axis.Normalize(), degrees*math32.Pi/180)
}

// Skew returns the perspective correction matrix that shears x and y by z.
func Skew(skewX, skewY float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		skewX, skewY, 1, 0,
		0, 0, 0, 1,
	}
}

// SkewFor computes the skew for a point (x, y) against the viewport
// (vpX, vpY, vpW, vpH), all in pixels.
func SkewFor(x, y, vpX, vpY, vpW, vpH float32) Mat4 {
	return Skew(
		-((x-vpX)-vpW/2)*SkewFactor,
		-((y-vpY)-vpH/2)*SkewFactor,
	)
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Ptr returns a pointer to the first element (for OpenGL matrix calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Project maps an object-space point to window coordinates through the
// model-view and projection matrices, like gluProject. The returned y has
// its origin at the bottom of the viewport.
func Project(p Vec3, modelView, projection Mat4, viewport [4]int) Vec3 {
	win := mgl32.Project(
		mgl32.Vec3{p.X, p.Y, p.Z},
		mgl32.Mat4(modelView),
		mgl32.Mat4(projection),
		viewport[0], viewport[1], viewport[2], viewport[3],
	)
	return Vec3{win[0], win[1], win[2]}
}
