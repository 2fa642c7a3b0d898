// Package lighting describes the directional light that shades pieces.
package lighting

import (
	"github.com/Faultbox/polyfx/pkg/math"
)

// Light is a directional light with a fixed ambient term.
type Light struct {
	Direction math.Vec3 // Towards the light, not normalized
	Ambient   float32
	Diffuse   float32
}

// Piece is the light used for lit pieces: slightly up and to the left of
// the viewer.
var Piece = Light{
	Direction: math.Vec3{X: -0.5, Y: 0.5, Z: 9},
	Ambient:   0.3,
	Diffuse:   0.9,
}

// Uniform returns the normalized direction for shader upload.
func (l Light) Uniform() [3]float32 {
	d := l.Direction.Normalize()
	return [3]float32{d.X, d.Y, d.Z}
}

// Intensity returns the colour multiplier for a surface with the given
// normal, clamped to [Ambient, 1].
func (l Light) Intensity(normal math.Vec3) float32 {
	d := normal.Normalize().Dot(l.Direction.Normalize())
	if d < 0 {
		d = 0
	}
	return min(l.Ambient+l.Diffuse*d, 1)
}
