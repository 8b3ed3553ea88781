//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// printRasTerm draws an image with whichever inline image protocol the
// terminal supports: kitty, iTerm2/WezTerm or sixel.
func printRasTerm(w io.Writer, img image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, img)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, img)
	default:
		capable, cerr := rasterm.IsSixelCapable()
		if cerr != nil || !capable {
			return errors.New("terminal supports no inline image protocol")
		}
		paletted := image.NewPaletted(img.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(paletted, img.Bounds(), img, image.ZP)
		err = rasterm.Settings{}.SixelWriteImage(w, paletted)
	}
	if err != nil {
		return errors.Wrap(err, "writing inline image")
	}
	fmt.Fprint(w, "\n")
	return nil
}
