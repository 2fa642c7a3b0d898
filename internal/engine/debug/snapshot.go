package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Snapshots writes numbered PNG frames to a directory.
type Snapshots struct {
	outputDir string
	prefix    string
	next      int
}

// NewSnapshots creates a snapshot writer. Files are named prefix_NNNN.png.
func NewSnapshots(outputDir, prefix string) *Snapshots {
	return &Snapshots{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Filename returns the path the next snapshot will be written to.
func (s *Snapshots) Filename() string {
	name := fmt.Sprintf("%s_%04d.png", s.prefix, s.next)
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// SavePixels writes bottom-up RGBA rows as read back from the framebuffer.
func (s *Snapshots) SavePixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return s.Save(img)
}

// Save writes img as the next snapshot and returns its path.
func (s *Snapshots) Save(img image.Image) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := s.Filename()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	s.next++
	return name, nil
}
