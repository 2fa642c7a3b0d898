// Package texture builds the window surfaces effects animate.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Surface colours.
var (
	TitleBarColor = color.RGBA{R: 0x2d, G: 0x4a, B: 0x7c, A: 0xff}
	TitleColor    = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	lightCell     = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	darkCell      = color.RGBA{R: 0xb8, G: 0xc4, B: 0xd0, A: 0xff}
)

const (
	// TitleBarHeight is the decoration height of generated surfaces.
	TitleBarHeight = 24
	checkerCell    = 32
	titleSize      = 14
)

// Surface draws a stand-in window of the given size: a title bar carrying
// title over a checkered body, so piece seams and texture coordinates are
// easy to follow.
func Surface(width, height int, title string) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture: invalid surface size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := lightCell
			if (x/checkerCell+y/checkerCell)%2 == 1 {
				c = darkCell
			}
			img.SetRGBA(x, y, c)
		}
	}

	bar := image.Rect(0, 0, width, min(TitleBarHeight, height))
	draw.Draw(img, bar, image.NewUniform(TitleBarColor), image.Point{}, draw.Src)

	if title == "" || height < TitleBarHeight {
		return img, nil
	}
	face, err := titleFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(TitleColor),
		Face: face,
		Dot:  fixed.P(8, TitleBarHeight-7),
	}
	d.DrawString(title)
	return img, nil
}

func titleFace() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("texture: parse title font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    titleSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("texture: title face: %w", err)
	}
	return face, nil
}
