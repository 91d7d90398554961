// Package ttesting contains assertions and image fixtures shared by the
// package tests.
package ttesting

import (
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualFloat64(t *testing.T, name string, got, want float64) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %g; want %g", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// AssertSameImage checks that got has the size of want and the same
// non-premultiplied color at every pixel. Both images are compared relative to
// their own bounds' origin.
func AssertSameImage(t *testing.T, name string, got, want image.Image) {
	t.Run(name, func(t *testing.T) {
		if got == nil {
			t.Fatalf("got nil image")
		}
		gb, wb := got.Bounds(), want.Bounds()
		if gb.Size() != wb.Size() {
			t.Fatalf("got size %v; want %v", gb.Size(), wb.Size())
		}
		for y := 0; y < wb.Dy(); y++ {
			for x := 0; x < wb.Dx(); x++ {
				g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
				w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
				if g != w {
					t.Fatalf("pixel (%d,%d): got %v; want %v", x, y, g, w)
				}
			}
		}
	})
}
