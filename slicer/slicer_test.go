package slicer

import (
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Rohesie/wallmount-slicer/frames"
	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/ttesting"
)

// strip is a 16x32 layout over a 64x32 sheet, with poses laid out left to
// right as north, south, east, west.
var strip = layout.Layout{
	XStep: 16, YStep: 32,
	NorthStartX: 0,
	SouthStartX: 16,
	EastStartX:  32,
	WestStartX:  48,
}

var (
	northColor = ttesting.Red
	southColor = ttesting.Green
	eastColor  = ttesting.Blue
	westColor  = ttesting.Yellow
)

// stripSheet draws the four poses of strip, each in its own color, with a
// marker pixel of the passed color in each pose's top left corner.
func stripSheet(marker color.Color) *image.NRGBA {
	patch := func(x int, c color.Color) []ttesting.Patch {
		return []ttesting.Patch{
			{Rect: image.Rect(x, 0, x+16, 32), Color: c},
			{Rect: image.Rect(x, 0, x+1, 1), Color: marker},
		}
	}
	var ps []ttesting.Patch
	ps = append(ps, patch(0, northColor)...)
	ps = append(ps, patch(16, southColor)...)
	ps = append(ps, patch(32, eastColor)...)
	ps = append(ps, patch(48, westColor)...)
	return ttesting.Sheet(64, 32, ps...)
}

func pose(c, marker color.Color) image.Image {
	return ttesting.Sheet(16, 32,
		ttesting.Patch{Rect: image.Rect(0, 0, 16, 32), Color: c},
		ttesting.Patch{Rect: image.Rect(0, 0, 1, 1), Color: marker})
}

func TestSplitOrder(t *testing.T) {
	got := Split(stripSheet(ttesting.White), strip)
	want := []image.Image{
		pose(southColor, ttesting.White),
		pose(northColor, ttesting.White),
		pose(eastColor, ttesting.White),
		pose(westColor, ttesting.White),
	}
	for i, d := range layout.Directions {
		ttesting.AssertSameImage(t, d.String(), got[i], want[i])
	}
}

func TestSplitSubImage(t *testing.T) {
	// A sheet whose bounds don't start at the origin.
	big := ttesting.Sheet(80, 40)
	sheet := stripSheet(ttesting.White)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			big.Set(x+10, y+5, sheet.At(x, y))
		}
	}
	sub := big.SubImage(image.Rect(10, 5, 74, 37))

	got := Split(sub, strip)
	ttesting.AssertSameImage(t, "south", got[0], pose(southColor, ttesting.White))
	ttesting.AssertSameImage(t, "west", got[3], pose(westColor, ttesting.White))
	if !got[0].Bounds().Min.Eq(image.Point{}) {
		t.Errorf("crop bounds %v; want zero origin", got[0].Bounds())
	}
}

func TestSplitDoesNotAlias(t *testing.T) {
	sheet := stripSheet(ttesting.White)
	crops := Split(sheet, strip)
	sheet.Set(16, 0, ttesting.Blue)
	ttesting.AssertSameImage(t, "south", crops[0], pose(southColor, ttesting.White))
}

func TestSplitOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Split of a too small image did not panic")
		}
	}()
	Split(ttesting.Fill(48, 32, ttesting.Red), strip)
}

func TestCentiseconds(t *testing.T) {
	tests := []struct {
		ms   int
		want float64
	}{
		{250, 25.0},
		{33, 3.3},
		{100, 10.0},
		{0, 0},
		{5, 0.5},
	}
	for _, tc := range tests {
		ttesting.AssertEqualFloat64(t, fmt.Sprintf("%dms", tc.ms), Centiseconds(time.Duration(tc.ms)*time.Millisecond), tc.want)
	}
}

func TestAssembleStatic(t *testing.T) {
	s := Assemble(frames.Static(stripSheet(ttesting.White)), strip, "wall")
	ttesting.AssertEqualString(t, "name", s.Name, "wall")
	ttesting.AssertEqualInt(t, "dirs", s.Dirs, 4)
	ttesting.AssertEqualInt(t, "frames", s.Frames, 1)
	ttesting.AssertEqualInt(t, "images", len(s.Images), 4)
	if s.Delays != nil {
		t.Errorf("static state has delays %v", s.Delays)
	}
	ttesting.AssertSameImage(t, "south", s.Images[0], pose(southColor, ttesting.White))
	ttesting.AssertSameImage(t, "north", s.Images[1], pose(northColor, ttesting.White))
	ttesting.AssertSameImage(t, "east", s.Images[2], pose(eastColor, ttesting.White))
	ttesting.AssertSameImage(t, "west", s.Images[3], pose(westColor, ttesting.White))
}

func animatedSet(t *testing.T, delays ...time.Duration) *frames.Set {
	t.Helper()
	markers := []color.Color{ttesting.White, ttesting.Red, ttesting.Blue, ttesting.Green}
	var fr []frames.Frame
	for i, d := range delays {
		fr = append(fr, frames.Frame{Image: stripSheet(markers[i%len(markers)]), Delay: d})
	}
	set, err := frames.Animated(fr)
	if err != nil {
		t.Fatalf("Animated: %v", err)
	}
	return set
}

func TestAssembleAnimated(t *testing.T) {
	set := animatedSet(t, 100*time.Millisecond, 200*time.Millisecond, 300*time.Millisecond)
	s := Assemble(set, strip, "blink")

	ttesting.AssertEqualInt(t, "frames", s.Frames, 3)
	ttesting.AssertEqualInt(t, "images", len(s.Images), 12)
	ttesting.AssertEqualInt(t, "delays", len(s.Delays), 3)
	for i, want := range []float64{10.0, 20.0, 30.0} {
		ttesting.AssertEqualFloat64(t, fmt.Sprintf("delay %d", i), s.Delays[i], want)
	}

	// Images 4i..4i+3 are frame i's crops in direction order.
	for i, fr := range set.Frames {
		crops := Split(fr.Image, strip)
		for j := range crops {
			ttesting.AssertSameImage(t, fmt.Sprintf("frame %d dir %d", i, j), s.Image(i, j), crops[j])
		}
	}
}

func TestAssembleSingleFrameAnimation(t *testing.T) {
	s := Assemble(animatedSet(t, 250*time.Millisecond), strip, "still")
	ttesting.AssertEqualInt(t, "frames", s.Frames, 1)
	ttesting.AssertEqualInt(t, "images", len(s.Images), 4)
	if s.Delays != nil {
		t.Errorf("single frame state has delays %v", s.Delays)
	}
}

func TestAssembleDelayConversion(t *testing.T) {
	s := Assemble(animatedSet(t, 250*time.Millisecond, 33*time.Millisecond), strip, "x")
	ttesting.AssertEqualFloat64(t, "250ms", s.Delays[0], 25.0)
	ttesting.AssertEqualFloat64(t, "33ms", s.Delays[1], 3.3)
}

func TestStateName(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"a/b/c.png", "c"},
		{"x.y.gif", "x"},
		{"noext", "noext"},
		{"", ""},
		{`C:\sprites\wall.png`, "wall"},
		{`mixed/dirs\lamp.gif`, "lamp"},
		{"v1.2.png", "v1"},
		{"dir.d/wall.png", "dir"},
		{"trailing/", ""},
	}
	for _, tc := range tests {
		ttesting.AssertEqualString(t, tc.path, StateName(tc.path), tc.want)
	}
}

func TestCheckMismatch(t *testing.T) {
	// All origins at 0,0 except south at 32,0: needs 64 pixels of width.
	l := layout.Layout{XStep: 32, YStep: 32, SouthStartX: 32}

	err := Check("narrow.png", frames.Static(ttesting.Fill(48, 32, ttesting.Red)), l)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v; want %v", err, ErrDimensionMismatch)
	}
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("got %T; want *DimensionMismatchError", err)
	}
	ttesting.AssertEqualString(t, "path", dm.Path, "narrow.png")
	ttesting.AssertEqualInt(t, "width", dm.Width, 48)
	ttesting.AssertEqualInt(t, "required width", dm.RequiredWidth, 64)
	ttesting.AssertEqualInt(t, "height", dm.Height, 32)
	ttesting.AssertEqualInt(t, "required height", dm.RequiredHeight, 32)

	if err := Check("wide.png", frames.Static(ttesting.Fill(64, 32, ttesting.Red)), l); err != nil {
		t.Errorf("64x32: %v", err)
	}
}

func TestCheckUniformFrames(t *testing.T) {
	set, err := frames.Animated([]frames.Frame{
		{Image: stripSheet(ttesting.White)},
		{Image: stripSheet(ttesting.White)},
		{Image: ttesting.Fill(80, 32, ttesting.Red)},
	})
	if err != nil {
		t.Fatalf("Animated: %v", err)
	}
	err = Check("anim.gif", set, strip)
	var dm *DimensionMismatchError
	if !errors.As(err, &dm) {
		t.Fatalf("got %v; want *DimensionMismatchError", err)
	}
	ttesting.AssertEqualInt(t, "frame", dm.Frame, 2)
	ttesting.AssertEqualInt(t, "width", dm.Width, 80)
	ttesting.AssertEqualInt(t, "first frame width", dm.RequiredWidth, 64)
}

func TestProcess(t *testing.T) {
	s, err := Process("sprites/lamp.png", frames.Static(stripSheet(ttesting.White)), strip)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	ttesting.AssertEqualString(t, "name", s.Name, "lamp")

	if _, err := Process("small.png", frames.Static(ttesting.Fill(10, 10, ttesting.Red)), strip); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v; want %v", err, ErrDimensionMismatch)
	}
}
