package polygon

import "github.com/chewxy/math32"

// Decelerate remaps p in [0,1] along a sigmoid segment. Forward playback
// starts slowly and speeds up; reversed playback (opening windows) comes
// to rest gently.
func Decelerate(p float32) float32 {
	return decelerateCustom(p, 0.5, 0.75)
}

func sigmoid(x, slope float32) float32 {
	return 1 / (1 + math32.Exp(-slope*2*(x-0.5)))
}

func decelerateCustom(p, minX, maxX float32) float32 {
	const slope = 8
	x := 1 - p
	s0 := sigmoid(minX, slope)
	s1 := sigmoid(maxX, slope)
	return 1 - (sigmoid(minX+x*(maxX-minX), slope)-s0)/(s1-s0)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MoveProgress returns how far p has travelled within its own move window.
// A zero-length window completes as soon as it opens.
func MoveProgress(p *Polygon, forwardProgress float32) float32 {
	if p.MoveDuration <= 0 {
		if forwardProgress >= p.MoveStart {
			return 1
		}
		return 0
	}
	return clamp01((forwardProgress - p.MoveStart) / p.MoveDuration)
}

// Step moves p to its pose at forwardProgress. Depth of the final offset is
// given as a fraction of screenWidth pixels.
func Step(p *Polygon, forwardProgress float32, decelerate bool, screenWidth float32) {
	mp := MoveProgress(p, forwardProgress)
	if decelerate {
		mp = Decelerate(mp)
	}
	if screenWidth <= 0 {
		screenWidth = 1
	}

	p.Center.X = p.CenterStart.X + mp*p.FinalRelPos.X
	p.Center.Y = p.CenterStart.Y + mp*p.FinalRelPos.Y
	p.Center.Z = p.CenterStart.Z + mp*p.FinalRelPos.Z/screenWidth
	p.RotationAngle = p.RotationAngleStart + mp*p.FinalRotation
}

// Step advances every piece of the set.
func (s *Set) Step(forwardProgress float32) {
	s.progress = forwardProgress
	w := s.screenWidth()
	for i := range s.Polygons {
		Step(&s.Polygons[i], forwardProgress, s.Decelerate, w)
	}
}
