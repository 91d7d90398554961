// Package dmi reads and writes BYOND icon files.
//
// A DMI file is a PNG spritesheet with a zTXt chunk under the "Description"
// keyword. The chunk lists the icon states in sheet order; each state owns
// dirs*frames consecutive cells of the sheet, frame by frame, and within a
// frame one cell per direction.
package dmi

import (
	"image"
	"math"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Version written to the description of new icons.
const Version = "4.0"

// ErrMalformed is returned for DMI files whose description or sheet can't be
// understood.
var ErrMalformed = errors.New("malformed dmi")

// ErrInvalidName is returned for state names the description can't hold.
var ErrInvalidName = errors.New("invalid icon state name")

// ValidName checks that name can be stored in a DMI description: Latin-1
// only, without control characters.
func ValidName(name string) error {
	for _, r := range name {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok {
			return errors.Wrapf(ErrInvalidName, "%q: %q is not a latin-1 character", name, r)
		}
		if unicode.IsControl(r) {
			return errors.Wrapf(ErrInvalidName, "%q: control character %U", name, r)
		}
	}
	return nil
}

// State is one named animation in an icon, with all of its directions.
type State struct {
	Name   string
	Dirs   int
	Frames int
	// Images holds Dirs*Frames images: all directions of frame 0, then all
	// directions of frame 1, and so on.
	Images []image.Image
	// Delays holds one delay per frame in centiseconds. Only used when
	// Frames > 1.
	Delays []float64
	// Loop is the number of times the animation plays; 0 means forever.
	Loop int
	// Rewind makes the animation play back and forth.
	Rewind bool
}

// Image returns the image for the passed frame and direction index.
func (s *State) Image(frame, dir int) image.Image {
	return s.Images[frame*s.Dirs+dir]
}

func (s *State) validate() error {
	if err := ValidName(s.Name); err != nil {
		return err
	}
	if s.Dirs <= 0 || s.Frames <= 0 {
		return errors.Errorf("state %q: dirs %d, frames %d; want both positive", s.Name, s.Dirs, s.Frames)
	}
	if len(s.Images) != s.Dirs*s.Frames {
		return errors.Errorf("state %q: got %d images; want dirs*frames = %d", s.Name, len(s.Images), s.Dirs*s.Frames)
	}
	if s.Frames > 1 && len(s.Delays) != s.Frames {
		return errors.Errorf("state %q: got %d delays; want %d", s.Name, len(s.Delays), s.Frames)
	}
	return nil
}

// Icon is a whole DMI file: a cell size and the states in sheet order.
type Icon struct {
	Version string
	Width   int
	Height  int
	States  []*State
}

// New returns an empty icon with the passed cell size.
func New(width, height int) *Icon {
	return &Icon{Version: Version, Width: width, Height: height}
}

// cells returns the number of cells all states occupy.
func (ic *Icon) cells() int {
	n := 0
	for _, s := range ic.States {
		n += s.Dirs * s.Frames
	}
	return n
}

// columns returns the side of the square grid used to lay out n cells.
func columns(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
