//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package imageprint

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

func GetTermSize() (TermSize, error) {
	var err error
	var w, h int
	if w, h, err = terminal.GetSize(int(os.Stdout.Fd())); err == nil {
		return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
	}
	return TermSize{}, err
}
