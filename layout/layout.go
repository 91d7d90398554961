// Package layout describes where the four directional poses sit inside a
// wallmount sprite sheet, and checks whether a sheet is large enough to hold
// them.
package layout

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Direction is one of the four poses a sheet carries.
type Direction int

// Values follow the order BYOND stores directions in a DMI state.
const (
	South Direction = iota
	North
	East
	West
)

// Directions is the canonical order of the four poses inside an icon state.
// Consumers of the resulting DMI index images by this order.
var Directions = [4]Direction{South, North, East, West}

func (d Direction) String() string {
	switch d {
	case South:
		return "south"
	case North:
		return "north"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection returns the direction with the passed lowercase name.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Layout holds the crop size shared by all directions, and the top left
// corner of each direction's crop.
//
// A Layout is loaded once and never modified afterwards; pass it by value.
type Layout struct {
	XStep uint32 `yaml:"x_step" json:"x_step"`
	YStep uint32 `yaml:"y_step" json:"y_step"`

	NorthStartX uint32 `yaml:"north_start_x" json:"north_start_x"`
	NorthStartY uint32 `yaml:"north_start_y" json:"north_start_y"`
	EastStartX  uint32 `yaml:"east_start_x" json:"east_start_x"`
	EastStartY  uint32 `yaml:"east_start_y" json:"east_start_y"`
	SouthStartX uint32 `yaml:"south_start_x" json:"south_start_x"`
	SouthStartY uint32 `yaml:"south_start_y" json:"south_start_y"`
	WestStartX  uint32 `yaml:"west_start_x" json:"west_start_x"`
	WestStartY  uint32 `yaml:"west_start_y" json:"west_start_y"`
}

// Origin returns the top left corner of the passed direction's crop.
func (l Layout) Origin(d Direction) image.Point {
	switch d {
	case South:
		return image.Pt(int(l.SouthStartX), int(l.SouthStartY))
	case North:
		return image.Pt(int(l.NorthStartX), int(l.NorthStartY))
	case East:
		return image.Pt(int(l.EastStartX), int(l.EastStartY))
	case West:
		return image.Pt(int(l.WestStartX), int(l.WestStartY))
	}
	panic(fmt.Sprintf("layout: origin of invalid direction %d", int(d)))
}

// Size returns the crop size shared by all directions.
func (l Layout) Size() image.Point {
	return image.Pt(int(l.XStep), int(l.YStep))
}

// Rect returns the crop rectangle of the passed direction.
func (l Layout) Rect(d Direction) image.Rectangle {
	o := l.Origin(d)
	return image.Rectangle{Min: o, Max: o.Add(l.Size())}
}

// RequiredSize returns the smallest sheet size that holds every direction's
// crop.
func (l Layout) RequiredSize() (w, h int) {
	for _, d := range Directions {
		o := l.Origin(d)
		if o.X > w {
			w = o.X
		}
		if o.Y > h {
			h = o.Y
		}
	}
	return w + int(l.XStep), h + int(l.YStep)
}

// Fits reports whether a sheet of the passed size holds all four crops.
// Layouts with an empty crop size never fit.
func (l Layout) Fits(w, h int) bool {
	if l.XStep == 0 || l.YStep == 0 {
		return false
	}
	rw, rh := l.RequiredSize()
	return rw <= w && rh <= h
}

// Validate returns an error wrapping ErrConfigInvalid if the layout describes
// degenerate crops.
func (l Layout) Validate() error {
	if l.XStep == 0 {
		return errors.Wrap(ErrConfigInvalid, "x_step must be positive")
	}
	if l.YStep == 0 {
		return errors.Wrap(ErrConfigInvalid, "y_step must be positive")
	}
	return nil
}
