package dmi

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Decode reads a DMI file and cuts its sheet back into per-state images.
func Decode(r io.Reader) (*Icon, error) {
	p, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "dmi: reading")
	}
	desc, err := readDescription(p)
	if err != nil {
		return nil, err
	}
	ic, err := ParseDescription(desc)
	if err != nil {
		return nil, err
	}
	sheet, err := png.Decode(bytes.NewReader(p))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "sheet: %v", err)
	}

	b := sheet.Bounds()
	if ic.Width <= 0 || ic.Height <= 0 {
		return nil, errors.Wrapf(ErrMalformed, "cell size %dx%d", ic.Width, ic.Height)
	}
	cols, rows := b.Dx()/ic.Width, b.Dy()/ic.Height
	if need := ic.cells(); need > cols*rows {
		return nil, errors.Wrapf(ErrMalformed, "%d cells described, sheet holds %d", need, cols*rows)
	}

	i := 0
	for _, s := range ic.States {
		if s.Dirs <= 0 || s.Frames <= 0 {
			return nil, errors.Wrapf(ErrMalformed, "state %q: dirs %d, frames %d", s.Name, s.Dirs, s.Frames)
		}
		s.Images = make([]image.Image, 0, s.Dirs*s.Frames)
		for n := 0; n < s.Dirs*s.Frames; n++ {
			at := b.Min.Add(image.Pt((i%cols)*ic.Width, (i/cols)*ic.Height))
			cell := image.NewNRGBA(image.Rect(0, 0, ic.Width, ic.Height))
			draw.Draw(cell, cell.Bounds(), sheet, at, draw.Src)
			s.Images = append(s.Images, cell)
			i++
		}
	}
	return ic, nil
}
