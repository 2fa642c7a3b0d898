package polygon

import (
	"image"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

var texScale = matrix.Matrix{1.0 / 100, 0, 0, 1.0 / 100, 0, 0}

func clip(x0, y0, x1, y1 int) ClipInput {
	return ClipInput{Box: image.Rect(x0, y0, x1, y1), TexMatrix: texScale}
}

// paintTick runs one frame with one draw call per clip batch.
func paintTick(s *Set, b Backend, progress float32, batches ...[]ClipInput) {
	s.PrePreparePaint()
	s.PrePaintWindow()
	for _, batch := range batches {
		s.RecordClips(batch)
		s.Draw(b, PaintAttributes{Opacity: 1, Brightness: 1, Saturation: 1}, progress, Viewport{Width: 1000, Height: 800})
	}
	s.PostPaintWindow()
}

func gridSet(t *testing.T) *Set {
	t.Helper()
	s := testSet(image.Rect(0, 0, 100, 100))
	if err := s.Tessellate(GridSpec{Topology: Rectangles, GridWidth: 2, GridHeight: 2}); err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	return s
}

func TestClipDiffingScenario(t *testing.T) {
	s := gridSet(t)

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50)})
	if !s.ClipsUpdated() || len(s.Clips()) != 1 {
		t.Fatalf("first record: updated=%v len=%d", s.ClipsUpdated(), len(s.Clips()))
	}

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50)})
	if s.ClipsUpdated() {
		t.Error("identical clip marked the ledger updated")
	}
	if len(s.Clips()) != 1 {
		t.Errorf("ledger length: got %d, want 1", len(s.Clips()))
	}

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 60, 50)})
	if !s.ClipsUpdated() {
		t.Error("changed clip did not mark the ledger updated")
	}
	if len(s.Clips()) != 1 || s.Clips()[0].Box != image.Rect(0, 0, 60, 50) {
		t.Errorf("ledger: got %+v, want single (0,0)-(60,50)", s.Clips())
	}
}

func TestClipDiffingMatrixChange(t *testing.T) {
	s := gridSet(t)

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50)})

	moved := clip(0, 0, 50, 50)
	moved.TexMatrix[4] = 0.5
	s.PrePreparePaint()
	s.RecordClips([]ClipInput{moved})
	if !s.ClipsUpdated() {
		t.Error("texture matrix change did not mark the ledger updated")
	}
}

func TestClipDiffingTruncatesTail(t *testing.T) {
	s := gridSet(t)

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50), clip(50, 0, 100, 50), clip(0, 50, 100, 100)})

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50), clip(10, 10, 20, 20)})

	got := s.Clips()
	want := []image.Rectangle{image.Rect(0, 0, 50, 50), image.Rect(10, 10, 20, 20)}
	if len(got) != len(want) {
		t.Fatalf("ledger length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Box != want[i] {
			t.Errorf("clip %d: got %v, want %v", i, got[i].Box, want[i])
		}
	}
}

func TestClipContentEpsilon(t *testing.T) {
	s := gridSet(t)

	s.PrePreparePaint()
	s.RecordClips([]ClipInput{clip(0, 0, 100, 100), clip(0, 0, 50, 50)})

	full := s.Clips()[0].BoxF
	if !near64(full.LLx, -0.1) || !near64(full.LLy, -0.1) || !near64(full.URx, 100.1) || !near64(full.URy, 100.1) {
		t.Errorf("content clip BoxF: got %+v, want grown by 0.1", full)
	}
	part := s.Clips()[1].BoxF
	if part.LLx != 0 || part.LLy != 0 || part.URx != 50 || part.URy != 50 {
		t.Errorf("partial clip BoxF: got %+v, want exact box", part)
	}
}

func TestPostPaintTrimsUndrawnClips(t *testing.T) {
	s := gridSet(t)

	s.PrePreparePaint()
	s.PrePaintWindow()
	s.RecordClips([]ClipInput{clip(0, 0, 50, 50)})
	s.PostPaintWindow()

	if len(s.Clips()) != 0 {
		t.Errorf("undrawn clips kept: %d", len(s.Clips()))
	}
}

func TestPostPaintKeepsDrawnClips(t *testing.T) {
	s := gridSet(t)
	b := &recordingBackend{}

	paintTick(s, b, 0, []ClipInput{clip(0, 0, 50, 50)})
	if len(s.Clips()) != 1 {
		t.Errorf("drawn clips trimmed: %d", len(s.Clips()))
	}
}

func TestUnchangedClipsSkipResolve(t *testing.T) {
	s := gridSet(t)
	b := &recordingBackend{}

	paintTick(s, b, 0, []ClipInput{clip(0, 0, 50, 50)})
	first := append([]int(nil), s.Clips()[0].Intersecting...)
	if len(first) != 1 || first[0] != 0 {
		t.Fatalf("intersecting: got %v, want [0]", first)
	}

	// Moving a piece's box would change the result if resolution ran again.
	s.Polygons[0].BoundingBox = image.Rect(500, 500, 600, 600)
	paintTick(s, b, 0, []ClipInput{clip(0, 0, 50, 50)})

	if s.ClipsUpdated() {
		t.Error("identical clips marked the ledger updated")
	}
	got := s.Clips()[0].Intersecting
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("intersecting after unchanged frame: got %v, want [0]", got)
	}
}

func TestMultipleDrawCallsPerTick(t *testing.T) {
	s := gridSet(t)
	b := &recordingBackend{}

	top := []ClipInput{clip(0, 0, 100, 50)}
	bottom := []ClipInput{clip(0, 50, 100, 100)}

	paintTick(s, b, 0, top, bottom)
	if got := len(b.frontFaces()); got != 4 {
		t.Fatalf("first frame drew %d pieces, want 4", got)
	}
	if len(s.Clips()) != 2 {
		t.Fatalf("ledger length: got %d, want 2", len(s.Clips()))
	}

	// Second frame replays both sub-calls from the recorded markers.
	b = &recordingBackend{}
	s.PrePreparePaint()
	s.PrePaintWindow()
	s.RecordClips(top)
	s.Draw(b, PaintAttributes{Opacity: 1}, 0, Viewport{Width: 1000, Height: 800})
	afterFirst := len(b.frontFaces())
	s.RecordClips(bottom)
	s.Draw(b, PaintAttributes{Opacity: 1}, 0, Viewport{Width: 1000, Height: 800})
	s.PostPaintWindow()

	if s.ClipsUpdated() {
		t.Error("replayed frame marked the ledger updated")
	}
	if afterFirst != 2 {
		t.Errorf("first sub-call drew %d pieces, want 2", afterFirst)
	}
	if got := len(b.frontFaces()); got != 4 {
		t.Errorf("frame drew %d pieces, want 4", got)
	}
}

func near64(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
