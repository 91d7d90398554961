package slicer

import (
	"image"
	"time"

	"github.com/golang/glog"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
)

// Centiseconds converts a frame delay to the hundredths of a second DMI
// delays are stored in, without truncation.
func Centiseconds(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return ms / 10.0
}

// Assemble builds the icon state for an already validated set of frames.
//
// Images are appended frame by frame in source order, four directions per
// frame, which is the order DMI expects. Delays are only kept when there is
// more than one frame.
func Assemble(set *frames.Set, l layout.Layout, name string) *dmi.State {
	s := &dmi.State{
		Name:   name,
		Dirs:   len(layout.Directions),
		Frames: set.Len(),
		Images: make([]image.Image, 0, len(layout.Directions)*set.Len()),
	}
	for _, fr := range set.Frames {
		crops := Split(fr.Image, l)
		s.Images = append(s.Images, crops[:]...)
		if set.Animated {
			s.Delays = append(s.Delays, Centiseconds(fr.Delay))
		}
	}
	if s.Frames == 1 {
		s.Delays = nil
	}
	glog.V(1).Infof("assembled state %q: %d frames, %d images, delays %v", name, s.Frames, len(s.Images), s.Delays)
	return s
}
