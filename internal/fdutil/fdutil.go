// Package fdutil manages file descriptor lifecycle: failure-tolerant
// release, non-blocking mode, and stream redirection.
package fdutil

import "io"

// CloseDescriptor releases a descriptor-like value. A value implementing
// io.Closer is closed through its own Close method; a raw int or uintptr
// descriptor goes to the OS close primitive. Close failures are
// suppressed: an already-closed or invalid descriptor is an expected,
// non-fatal case inside a long-running monitoring loop.
func CloseDescriptor(v any) {
	switch fd := v.(type) {
	case io.Closer:
		_ = fd.Close()
	case int:
		closeRaw(fd)
	case uintptr:
		closeRaw(int(fd))
	case int32:
		closeRaw(int(fd))
	}
}
