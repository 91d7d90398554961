package ttesting

import (
	"image"
	"image/color"
	"image/draw"
)

// Fill returns a w x h image filled with c.
func Fill(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Patch is a filled rectangle drawn by Sheet.
type Patch struct {
	Rect  image.Rectangle
	Color color.Color
}

// Sheet returns a transparent w x h image with the passed patches drawn on it
// in order.
func Sheet(w, h int, patches ...Patch) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, p := range patches {
		draw.Draw(img, p.Rect, image.NewUniform(p.Color), image.Point{}, draw.Src)
	}
	return img
}

// Opaque colors that survive paletting unchanged.
var (
	Red    = color.NRGBA{R: 0xFF, A: 0xFF}
	Green  = color.NRGBA{G: 0xFF, A: 0xFF}
	Blue   = color.NRGBA{B: 0xFF, A: 0xFF}
	Yellow = color.NRGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	White  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)
