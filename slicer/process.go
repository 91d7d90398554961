package slicer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
)

// ErrDimensionMismatch is matched by every *DimensionMismatchError.
var ErrDimensionMismatch = errors.New("config and image mismatch")

// DimensionMismatchError reports a sheet too small for the layout, or an
// animation whose frames differ in size.
type DimensionMismatchError struct {
	Path string
	// Frame is the index of the offending frame.
	Frame int

	Width, Height int
	// RequiredWidth and RequiredHeight are what the layout needs, or for a
	// later frame, the size of the first frame.
	RequiredWidth, RequiredHeight int
}

func (e *DimensionMismatchError) Error() string {
	if e.Frame > 0 {
		return fmt.Sprintf("%v: %s: frame %d is %dx%d, first frame is %dx%d",
			ErrDimensionMismatch, e.Path, e.Frame, e.Width, e.Height, e.RequiredWidth, e.RequiredHeight)
	}
	return fmt.Sprintf("%v: %s: image width / max config width: %d / %d, image height / max config height: %d / %d",
		ErrDimensionMismatch, e.Path, e.Width, e.RequiredWidth, e.Height, e.RequiredHeight)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Check verifies that the first frame of set fits l, and that every later
// frame has the first frame's size.
func Check(path string, set *frames.Set, l layout.Layout) error {
	w, h, err := set.Size()
	if err != nil {
		return errors.WithMessage(err, path)
	}
	if !l.Fits(w, h) {
		rw, rh := l.RequiredSize()
		return &DimensionMismatchError{Path: path, Width: w, Height: h, RequiredWidth: rw, RequiredHeight: rh}
	}
	for i, fr := range set.Frames[1:] {
		sz := fr.Image.Bounds().Size()
		if sz.X != w || sz.Y != h {
			return &DimensionMismatchError{Path: path, Frame: i + 1, Width: sz.X, Height: sz.Y, RequiredWidth: w, RequiredHeight: h}
		}
	}
	return nil
}

// Process checks set against l and assembles the icon state named after
// path. Names a DMI can't store fail with dmi.ErrInvalidName.
func Process(path string, set *frames.Set, l layout.Layout) (*dmi.State, error) {
	name := StateName(path)
	if err := dmi.ValidName(name); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	if err := Check(path, set, l); err != nil {
		return nil, err
	}
	return Assemble(set, l, name), nil
}
