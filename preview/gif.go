// Package preview renders icon states as animated GIFs, one direction at a
// time, so sliced sheets can be checked without BYOND.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/layout"
)

// staticDelay is used for single frame states, in 1/100 s.
const staticDelay = 100

// GIF builds an animation of one direction of s. Every frame is upscaled by
// scale (nearest neighbour, 1 keeps the size) and gets its own palette, with
// index 0 reserved for transparency.
func GIF(s *dmi.State, dir layout.Direction, scale int) (*gif.GIF, error) {
	if int(dir) < 0 || int(dir) >= s.Dirs {
		return nil, errors.Errorf("preview: state %q has no %v direction", s.Name, dir)
	}
	if scale < 1 {
		scale = 1
	}

	g := &gif.GIF{BackgroundIndex: 0}
	q := quantize.MedianCutQuantizer{}
	for f := 0; f < s.Frames; f++ {
		img := s.Image(f, int(dir))
		if scale > 1 {
			b := img.Bounds()
			img = resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), img, resize.NearestNeighbor)
		}

		// Up to 255 colors plus the transparent one.
		pal := q.Quantize(append(make(color.Palette, 0, 256), color.Transparent), img)
		pm := image.NewPaletted(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()), pal)
		draw.Draw(pm, pm.Bounds(), img, img.Bounds().Min, draw.Over)

		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, frameDelay(s, f))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	return g, nil
}

// frameDelay rounds a DMI delay to GIF's 1/100 s units. DMI and GIF share the
// unit, so this only drops fractions.
func frameDelay(s *dmi.State, f int) int {
	if s.Frames < 2 || f >= len(s.Delays) {
		return staticDelay
	}
	d := int(math.Round(s.Delays[f]))
	if d < 1 {
		d = 1
	}
	return d
}

// WriteGIF encodes the preview of one direction of s to w.
func WriteGIF(w io.Writer, s *dmi.State, dir layout.Direction, scale int) error {
	g, err := GIF(s, dir, scale)
	if err != nil {
		return err
	}
	return errors.Wrap(gif.EncodeAll(w, g), "preview: encoding gif")
}
