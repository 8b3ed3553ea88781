package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/greeny-assets/ttesting"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Mode24bit, Mode256Color, ModeNoColor, ModeITerm, ModeRasTerm} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Errorf("ParseMode(%q): %v", m, err)
			continue
		}
		ttesting.AssertEqualString(t, m.String(), got.String(), m.String())
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Errorf("ParseMode(sepia) succeeded")
	}
}

func TestPrintNoColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	img.Set(0, 1, color.Gray{Y: 100})
	img.Set(1, 1, color.Gray{Y: 50})
	// (2,0) and (2,1) stay transparent.

	buf := &bytes.Buffer{}
	p := &Printer{Mode: ModeNoColor, Out: buf, MaxWidth: 100, MaxHeight: 100}
	if err := p.Print(img, "test.png"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	ttesting.AssertEqualString(t, "ascii art", buf.String(), "..##  \n==--  \n")
}

func TestPrint24bit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})

	buf := &bytes.Buffer{}
	p := &Printer{Mode: Mode24bit, Blanks: true, Out: buf, MaxWidth: 100, MaxHeight: 100}
	if err := p.Print(img, "red.png"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	ttesting.AssertEqualString(t, "escape", buf.String(), "\x1b[48;2;255;0;0m  \x1b[0m\n")
}

func TestPrintDownsizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}

	buf := &bytes.Buffer{}
	p := &Printer{Mode: ModeNoColor, Blanks: true, Out: buf, MaxWidth: 4, MaxHeight: 4}
	if err := p.Print(img, "big.png"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	ttesting.AssertEqualInt(t, "rows", len(lines), 2)
	ttesting.AssertEqualInt(t, "columns", len(lines[0]), 8)
}

func TestPrintITerm(t *testing.T) {
	buf := &bytes.Buffer{}
	p := &Printer{Mode: ModeITerm, Out: buf, MaxWidth: 100, MaxHeight: 100}
	if err := p.Print(image.NewNRGBA(image.Rect(0, 0, 2, 3)), "a.png"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "\033]1337;File=name=YS5wbmc=;inline=1;") {
		t.Errorf("no iTerm escape in %q", buf.String())
	}
	if !strings.Contains(buf.String(), "width=2px;height=3px:") {
		t.Errorf("wrong dimensions in %q", buf.String())
	}
}
