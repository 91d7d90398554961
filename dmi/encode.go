package dmi

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Sheet lays out every state's images on a square grid, left to right and
// top to bottom, in state order.
func (ic *Icon) Sheet() (*image.NRGBA, error) {
	if ic.Width <= 0 || ic.Height <= 0 {
		return nil, errors.Errorf("dmi: cell size %dx%d; want positive", ic.Width, ic.Height)
	}
	n := ic.cells()
	cols := columns(n)
	sheet := image.NewNRGBA(image.Rect(0, 0, cols*ic.Width, cols*ic.Height))

	i := 0
	for _, s := range ic.States {
		if err := s.validate(); err != nil {
			return nil, err
		}
		for _, img := range s.Images {
			b := img.Bounds()
			if b.Dx() != ic.Width || b.Dy() != ic.Height {
				return nil, errors.Errorf("dmi: state %q has a %dx%d image; want %dx%d", s.Name, b.Dx(), b.Dy(), ic.Width, ic.Height)
			}
			at := image.Pt((i%cols)*ic.Width, (i/cols)*ic.Height)
			draw.Draw(sheet, image.Rectangle{Min: at, Max: at.Add(b.Size())}, img, b.Min, draw.Src)
			i++
		}
	}
	return sheet, nil
}

// Encode writes the icon as a DMI file.
func (ic *Icon) Encode(w io.Writer) error {
	desc, err := ic.Description()
	if err != nil {
		return errors.Wrap(err, "dmi: building description")
	}
	sheet, err := ic.Sheet()
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, sheet); err != nil {
		return errors.Wrap(err, "dmi: encoding sheet")
	}
	out, err := insertDescription(buf.Bytes(), desc)
	if err != nil {
		return err
	}
	glog.V(1).Infof("dmi: encoded %d states on a %v sheet, %d bytes", len(ic.States), sheet.Bounds().Size(), len(out))

	_, err = w.Write(out)
	return errors.Wrap(err, "dmi: writing")
}
