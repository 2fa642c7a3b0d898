package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// Load decodes a PNG, JPEG or BMP file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales src to exactly width by height.
func Fit(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// LoadSurface loads path scaled to the window size, or generates a stand-in
// surface titled title when path is empty.
func LoadSurface(path string, width, height int, title string) (*image.RGBA, error) {
	if path == "" {
		return Surface(width, height, title)
	}
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Fit(img, width, height), nil
}
