//go:build !unix

package identity

import "github.com/aralocke/gomonitor/internal/report"

// SetProcessOwner is a no-op on platforms without POSIX process identity.
func SetProcessOwner(_, _ int, _ report.Sink) OwnerResult {
	return OwnerResult{}
}

// SetProcessUmask is a no-op on platforms without umask semantics.
func SetProcessUmask(_ int, _ report.Sink) {}
