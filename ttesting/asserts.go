// Package ttesting contains small assertion helpers shared by the tests of
// this module. Each assertion runs as its own named subtest.
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

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualBool(t *testing.T, name string, got, want bool) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %t; want %t", got, want)
		}
	})
}

// AssertSamePixels checks that got holds exactly the pixels of region r of
// src, compared in the NRGBA color model. got is expected to start at its
// own bounds' Min.
func AssertSamePixels(t *testing.T, name string, got image.Image, src image.Image, r image.Rectangle) {
	t.Run(name, func(t *testing.T) {
		gb := got.Bounds()
		if gb.Dx() != r.Dx() || gb.Dy() != r.Dy() {
			t.Fatalf("got %dx%d image; want %dx%d", gb.Dx(), gb.Dy(), r.Dx(), r.Dy())
		}
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
				w := color.NRGBAModel.Convert(src.At(r.Min.X+x, r.Min.Y+y))
				if g != w {
					t.Fatalf("pixel (%d,%d): got %v; want %v", x, y, g, w)
				}
			}
		}
	})
}
