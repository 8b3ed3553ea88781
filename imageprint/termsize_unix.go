//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package imageprint

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

// GetTermSize returns the size of the controlling terminal in cells and, if
// the terminal reports it, in pixels.
func GetTermSize() (TermSize, error) {
	var err error
	var f *os.File
	if f, err = os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666); err == nil {
		defer f.Close()
		var sz *unix.Winsize
		if sz, err = unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			return TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}, nil
		}
	}
	var w, h int
	if w, h, err = terminal.GetSize(int(os.Stdout.Fd())); err == nil {
		return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
	}
	return TermSize{}, err
}
