package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestSurface(t *testing.T) {
	img, err := Surface(200, 120, "xterm")
	if err != nil {
		t.Fatalf("Surface: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(200, 120) {
		t.Errorf("size = %v, want 200x120", got)
	}
	if got := img.RGBAAt(199, 2); got != TitleBarColor {
		t.Errorf("title bar pixel = %v, want %v", got, TitleBarColor)
	}
	if a, b := img.RGBAAt(5, TitleBarHeight+5), img.RGBAAt(5+checkerCell, TitleBarHeight+5); a == b {
		t.Errorf("adjacent checker cells share colour %v", a)
	}

	titled := false
	for x := 0; x < 100 && !titled; x++ {
		for y := 0; y < TitleBarHeight; y++ {
			if img.RGBAAt(x, y) != TitleBarColor {
				titled = true
				break
			}
		}
	}
	if !titled {
		t.Error("title text not drawn")
	}
}

func TestSurfaceInvalidSize(t *testing.T) {
	if _, err := Surface(0, 10, ""); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	dst := Fit(src, 40, 25)
	if got := dst.Bounds().Size(); got != image.Pt(40, 25) {
		t.Fatalf("size = %v, want 40x25", got)
	}
	if got := dst.RGBAAt(20, 12); got.R < 0xfd || got.A < 0xfd {
		t.Errorf("centre pixel = %v, want white", got)
	}
}

func TestLoadSurface(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})

	pngPath := filepath.Join(dir, "surface.png")
	writeImage(t, pngPath, func(f *os.File) error { return png.Encode(f, src) })
	bmpPath := filepath.Join(dir, "surface.bmp")
	writeImage(t, bmpPath, func(f *os.File) error { return bmp.Encode(f, src) })

	tests := []struct {
		name string
		path string
	}{
		{"generated", ""},
		{"png", pngPath},
		{"bmp", bmpPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := LoadSurface(tt.path, 64, 48, "demo")
			if err != nil {
				t.Fatalf("LoadSurface: %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(64, 48) {
				t.Errorf("size = %v, want 64x48", got)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func writeImage(t *testing.T, path string, encode func(*os.File) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatal(err)
	}
}
