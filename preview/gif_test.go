package preview

import (
	"bytes"
	"image"
	"image/gif"
	"testing"

	"github.com/Rohesie/wallmount-slicer/dmi"
	"github.com/Rohesie/wallmount-slicer/layout"
	"github.com/Rohesie/wallmount-slicer/ttesting"
)

func testState() *dmi.State {
	s := &dmi.State{Name: "lamp", Dirs: 4, Frames: 2, Delays: []float64{10, 3.3}}
	for f := 0; f < 2; f++ {
		s.Images = append(s.Images,
			ttesting.Fill(4, 3, ttesting.Red),
			ttesting.Sheet(4, 3, ttesting.Patch{Rect: image.Rect(0, 0, 2, 3), Color: ttesting.Blue}),
			ttesting.Fill(4, 3, ttesting.Green),
			ttesting.Fill(4, 3, ttesting.Yellow),
		)
	}
	return s
}

func TestGIF(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteGIF(buf, testState(), layout.North, 2); err != nil {
		t.Fatalf("WriteGIF: %v", err)
	}
	g, err := gif.DecodeAll(buf)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	ttesting.AssertEqualInt(t, "frames", len(g.Image), 2)
	ttesting.AssertEqualInt(t, "first delay", g.Delay[0], 10)
	ttesting.AssertEqualInt(t, "second delay", g.Delay[1], 3)

	fr := g.Image[0]
	ttesting.AssertEqualInt(t, "width", fr.Bounds().Dx(), 8)
	ttesting.AssertEqualInt(t, "height", fr.Bounds().Dy(), 6)

	// North is blue on the left half, transparent on the right.
	if r, g, b, a := fr.At(1, 1).RGBA(); a < 0xF000 || b < 0xF000 || r > 0x1000 || g > 0x1000 {
		t.Errorf("left half: got %v; want blue", fr.At(1, 1))
	}
	if _, _, _, a := fr.At(6, 1).RGBA(); a != 0 {
		t.Errorf("right half: got %v; want transparent", fr.At(6, 1))
	}
}

func TestGIFStatic(t *testing.T) {
	s := &dmi.State{Name: "wall", Dirs: 4, Frames: 1}
	for i := 0; i < 4; i++ {
		s.Images = append(s.Images, ttesting.Fill(2, 2, ttesting.Green))
	}
	g, err := GIF(s, layout.West, 0)
	if err != nil {
		t.Fatalf("GIF: %v", err)
	}
	ttesting.AssertEqualInt(t, "frames", len(g.Image), 1)
	ttesting.AssertEqualInt(t, "delay", g.Delay[0], staticDelay)
	ttesting.AssertEqualInt(t, "width", g.Image[0].Bounds().Dx(), 2)
}

func TestGIFBadDirection(t *testing.T) {
	if _, err := GIF(testState(), layout.Direction(9), 1); err == nil {
		t.Errorf("GIF accepted direction 9")
	}
}
