// Package frames turns decoded sprite sheets into a uniform sequence of
// frames: a single untimed frame for still images, or an ordered list of
// timed frames for animations.
package frames

import (
	"image"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrDecode wraps failures to open or parse an input image.
	ErrDecode = errors.New("image could not be decoded")
	// ErrEmptyAnimation is returned for animated sources without frames.
	ErrEmptyAnimation = errors.New("animation has zero frames")
	// ErrUnsupportedFormat is returned for inputs that are neither PNG nor GIF.
	ErrUnsupportedFormat = errors.New("unsupported image format (only .png and .gif are supported)")
)

// Frame is one full-canvas raster of a sheet.
type Frame struct {
	Image image.Image
	// Delay is how long the frame is shown. Zero for still images.
	Delay time.Duration
}

// Set is the decoded content of one input sheet.
type Set struct {
	Frames []Frame
	// Animated is set for sets coming from an animated source, even if the
	// animation only has a single frame.
	Animated bool
}

// Static wraps a still image as a one-frame set.
func Static(img image.Image) *Set {
	return &Set{Frames: []Frame{{Image: img}}}
}

// Animated wraps an ordered list of timed frames.
func Animated(frames []Frame) (*Set, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyAnimation
	}
	return &Set{Frames: frames, Animated: true}, nil
}

// Size returns the dimensions of the first frame. Later frames are expected
// to have the same size.
func (s *Set) Size() (w, h int, err error) {
	if s == nil || len(s.Frames) == 0 {
		return 0, 0, ErrEmptyAnimation
	}
	sz := s.Frames[0].Image.Bounds().Size()
	return sz.X, sz.Y, nil
}

// Len returns the number of frames.
func (s *Set) Len() int {
	return len(s.Frames)
}
