// Package imageprint previews images on a terminal.
//
// Pixel modes draw each pixel as two character cells; the image modes hand
// the encoded picture to terminals that can show it inline (iTerm2, WezTerm,
// kitty, sixel-capable terminals).
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/gookit/color"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

type Mode int

const (
	Mode24bit Mode = iota
	Mode256Color
	ModeNoColor
	ModeITerm
	ModeRasTerm
)

var modeNames = map[Mode]string{
	Mode24bit:    "24bit",
	Mode256Color: "256",
	ModeNoColor:  "nocolor",
	ModeITerm:    "iterm",
	ModeRasTerm:  "rasterm",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "bad value"
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown preview mode %q", s)
}

// Printer renders images to Out, which defaults to os.Stdout.
type Printer struct {
	Mode Mode
	// Blanks draws colored blanks instead of ascii art in pixel modes.
	Blanks bool
	Out    io.Writer

	// MaxWidth and MaxHeight bound the printed size, in pixels for the
	// image modes and in printed pixels otherwise. Zero means the terminal
	// size, if it can be found.
	MaxWidth, MaxHeight uint
}

func (p *Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Print draws img. name is passed to terminals that label inline images.
func (p *Printer) Print(img image.Image, name string) error {
	img = p.downsize(img)
	w := p.out()

	switch p.Mode {
	case ModeITerm:
		return printITerm(w, img, name)
	case ModeRasTerm:
		return printRasTerm(w, img)
	case ModeNoColor, Mode256Color, Mode24bit:
		printPixels(w, img, p.Mode, p.Blanks)
		return nil
	}
	return errors.Errorf("cannot print in mode %v", p.Mode)
}

func (p *Printer) downsize(img image.Image) image.Image {
	maxW, maxH := p.MaxWidth, p.MaxHeight
	if maxW == 0 || maxH == 0 {
		termSize, err := GetTermSize()
		if err != nil {
			glog.V(2).Infof("imageprint: no terminal size, printing at native size: %v", err)
			return img
		}
		imageMode := p.Mode == ModeITerm || p.Mode == ModeRasTerm
		switch {
		case imageMode && termSize.WSXPixel != 0 && termSize.WSYPixel != 0:
			// Prefer native size if there's room for it.
			maxW, maxH = termSize.WSXPixel/2, termSize.WSYPixel/2
		case imageMode:
			return img
		default:
			maxW, maxH = termSize.WSCol/2, termSize.WSRow
		}
	}
	if maxW == 0 || maxH == 0 {
		return img
	}
	return resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
}

func printPixels(w io.Writer, img image.Image, mode Mode, blanks bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			shade(w, img.At(x, y), mode, blanks)
		}
		if mode == Mode24bit {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

func shade(w io.Writer, col ic.Color, mode Mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprint(w, "  ")
		return
	}

	cell := "  "
	if !blanks {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			cell = ".."
		case a < 64:
			cell = "--"
		case a < 128:
			cell = "=="
		default:
			cell = "##"
		}
	}

	r, g, bl := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch mode {
	case ModeNoColor:
		fmt.Fprint(w, cell)
	case Mode256Color:
		fmt.Fprint(w, color.RGB(r, g, bl, true).Sprint(cell))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s", r, g, bl, cell)
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func printITerm(w io.Writer, img image.Image, name string) error {
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, img); err != nil {
		return errors.Wrap(err, "encoding preview")
	}
	bEnc.Close()

	size := img.Bounds().Size()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n",
		base64.StdEncoding.EncodeToString([]byte(name)), b.Len(), size.X, size.Y, b.String())
	return err
}
