// Package slicer cuts directional wallmount sheets into icon states.
//
// Each input sheet holds the four poses of a sprite at the offsets described
// by a layout.Layout. Split cuts one raster into those poses, Assemble builds
// a dmi.State from every frame of a sheet, and Batch runs the whole pipeline
// over a list of input files, skipping and reporting inputs that fail.
package slicer

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/Rohesie/wallmount-slicer/layout"
)

// Split returns copies of the four direction crops of img, in
// layout.Directions order. img is not modified.
//
// The caller guarantees that l fits img; a crop outside the image is a
// programming error and panics.
func Split(img image.Image, l layout.Layout) [4]image.Image {
	var out [4]image.Image
	b := img.Bounds()
	for i, d := range layout.Directions {
		r := l.Rect(d).Add(b.Min)
		if !r.In(b) {
			panic(fmt.Sprintf("slicer: %v crop %v outside of %v", d, r, b))
		}
		crop := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(crop, crop.Bounds(), img, r.Min, draw.Src)
		out[i] = crop
	}
	return out
}
