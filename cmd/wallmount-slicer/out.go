package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/pkg/errors"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/preview"
	"github.com/Rohesie/wallmount-slicer/slicer"
)

func success(format string, args ...interface{}) {
	color.Green.Printf(format+"\n", args...)
}

func failure(format string, args ...interface{}) {
	color.Red.Printf(format+"\n", args...)
}

// report prints one line describing what happened to an input.
func report(o slicer.Outcome) {
	if o.Err == nil {
		success("Icon state built successfully: %s", o.Path)
		return
	}

	var dm *slicer.DimensionMismatchError
	switch {
	case errors.As(o.Err, &dm) && dm.Frame > 0:
		failure("Skipping %s: frame %d is %dx%d, but the first frame is %dx%d.",
			o.Path, dm.Frame, dm.Width, dm.Height, dm.RequiredWidth, dm.RequiredHeight)
	case errors.As(o.Err, &dm):
		failure("Skipping %s: config and image mismatch. Image width / max config width: %d / %d, image height / max config height: %d / %d.",
			o.Path, dm.Width, dm.RequiredWidth, dm.Height, dm.RequiredHeight)
	case errors.Is(o.Err, frames.ErrUnsupportedFormat):
		failure("Skipping %s: only .png and .gif files are supported.", o.Path)
	case errors.Is(o.Err, dmi.ErrInvalidName):
		failure("Skipping %s: the file name can't be used as an icon state name (latin-1 characters only).", o.Path)
	case errors.Is(o.Err, frames.ErrEmptyAnimation):
		failure("Skipping %s: the animation has no frames.", o.Path)
	default:
		failure("Skipping %s: %v", o.Path, o.Err)
	}
}

// writeIcon encodes ic to path and returns the written size for display.
func writeIcon(path string, ic *dmi.Icon) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating output")
	}
	if err := ic.Encode(f); err != nil {
		f.Close()
		return "", errors.Wrap(err, "encoding icon")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "closing output")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(err, "stat output")
	}
	return humanize.Bytes(uint64(fi.Size())), nil
}

// writePreviews writes <dir>/<state>_<direction>.gif for each direction of s.
func writePreviews(dir string, s *dmi.State, scale int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating preview dir")
	}
	for _, d := range layout.Directions {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.gif", s.Name, d))
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		err = preview.WriteGIF(f, s, d, scale)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}
	return nil
}
