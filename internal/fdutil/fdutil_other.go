//go:build !unix

package fdutil

import "os"

func closeRaw(int) {}

// SetNonBlocking is a no-op on platforms without fcntl semantics.
func SetNonBlocking(int) error { return nil }

// RedirectStream is a no-op on platforms without dup2 semantics.
func RedirectStream(_, _ *os.File) error { return nil }
