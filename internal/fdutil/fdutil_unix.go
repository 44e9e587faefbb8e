//go:build unix

package fdutil

import (
	"os"

	"golang.org/x/sys/unix"
)

func closeRaw(fd int) {
	_ = unix.Close(fd)
}

// SetNonBlocking switches fd into non-blocking mode.
func SetNonBlocking(fd int) error {
	return unix.SetNonblock(fd, true)
}

// RedirectStream points src at target so that subsequent writes to src
// land on target's file. A nil target redirects src to /dev/null.
func RedirectStream(src, target *os.File) error {
	if target == nil {
		devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		if err != nil {
			return err
		}
		defer func() {
			_ = devnull.Close()
		}()
		target = devnull
	}
	return dup2(int(target.Fd()), int(src.Fd()))
}
