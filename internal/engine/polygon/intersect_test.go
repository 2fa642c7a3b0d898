package polygon

import (
	"image"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestOverlaps(t *testing.T) {
	cb := image.Rect(10, 10, 20, 20)
	tests := []struct {
		name string
		bb   image.Rectangle
		want bool
	}{
		{"inside", image.Rect(12, 12, 18, 18), true},
		{"covering", image.Rect(0, 0, 30, 30), true},
		{"partial", image.Rect(15, 15, 25, 25), true},
		{"left edge", image.Rect(0, 10, 10, 20), false},
		{"right edge", image.Rect(20, 10, 30, 20), false},
		{"top edge", image.Rect(10, 0, 20, 10), false},
		{"bottom edge", image.Rect(10, 20, 20, 30), false},
		{"far", image.Rect(100, 100, 110, 110), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.bb, cb); got != tt.want {
				t.Errorf("overlaps(%v, %v) = %v, want %v", tt.bb, cb, got, tt.want)
			}
		})
	}
}

func resolvedClip(t *testing.T, s *Set, in ClipInput) *Clip {
	t.Helper()
	s.PrePreparePaint()
	s.PrePaintWindow()
	s.RecordClips([]ClipInput{in})
	s.resolve()
	return &s.Clips()[0]
}

func TestResolveTexCoords(t *testing.T) {
	s := gridSet(t)
	c := resolvedClip(t, s, clip(0, 0, 50, 50))

	if len(c.Intersecting) != 1 || c.Intersecting[0] != 0 {
		t.Fatalf("intersecting: got %v, want [0]", c.Intersecting)
	}

	// Front ring of the top-left cell runs (0,0) (0,50) (50,50) (50,0).
	want := [][2]float32{{0, 0}, {0, 0.5}, {0.5, 0.5}, {0.5, 0}}
	for k, uv := range want {
		if c.TexCoords[2*k] != uv[0] || c.TexCoords[2*k+1] != uv[1] {
			t.Errorf("front %d: got (%v, %v), want %v", k, c.TexCoords[2*k], c.TexCoords[2*k+1], uv)
		}
		back := 7 - k
		if c.TexCoords[2*back] != uv[0] || c.TexCoords[2*back+1] != uv[1] {
			t.Errorf("back %d: got (%v, %v), want %v", back, c.TexCoords[2*back], c.TexCoords[2*back+1], uv)
		}
	}
}

func TestResolveShearedMatrix(t *testing.T) {
	s := gridSet(t)
	in := ClipInput{Box: image.Rect(0, 0, 50, 50), TexMatrix: matrix.Matrix{0, 1, 1, 0, 0, 0}}
	c := resolvedClip(t, s, in)

	// Vertex 1 is at (0, 50); the swap matrix maps it to (50, 0).
	if c.TexCoords[2] != 50 || c.TexCoords[3] != 0 {
		t.Errorf("sheared vertex 1: got (%v, %v), want (50, 0)", c.TexCoords[2], c.TexCoords[3])
	}
}

func TestResolveBlocksFollowIntersecting(t *testing.T) {
	s := gridSet(t)
	c := resolvedClip(t, s, clip(0, 50, 100, 100))

	if len(c.Intersecting) != 2 || c.Intersecting[0] != 2 || c.Intersecting[1] != 3 {
		t.Fatalf("intersecting: got %v, want [2 3]", c.Intersecting)
	}
	// The second block starts after the first piece's four front vertices.
	// Its vertex 0 is (50, 50).
	if c.TexCoords[16] != 0.5 || c.TexCoords[17] != 0.5 {
		t.Errorf("second block vertex 0: got (%v, %v), want (0.5, 0.5)", c.TexCoords[16], c.TexCoords[17])
	}
}

func TestResolveTexCoordCapacity(t *testing.T) {
	for _, spec := range allTopologies() {
		t.Run(spec.Topology.String(), func(t *testing.T) {
			s := testSet(image.Rect(10, 20, 310, 220))
			if err := s.Tessellate(spec); err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			c := resolvedClip(t, s, clip(10, 20, 310, 220))
			if len(c.TexCoords) != 4*s.TotalSides() {
				t.Errorf("tex coords: got %d, want %d", len(c.TexCoords), 4*s.TotalSides())
			}
		})
	}
}
