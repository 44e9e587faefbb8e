//go:build unix

package identity

import (
	"fmt"

	"github.com/aralocke/gomonitor/internal/report"
	"golang.org/x/sys/unix"
)

// SetProcessOwner applies uid and then gid to the current process. The two
// steps are attempted independently: a failed setuid does not stop the
// setgid attempt. Failures are reported through the sink and carried in
// the OwnerResult; the caller decides whether a partial drop is
// acceptable. A negative id skips that step.
func SetProcessOwner(uid, gid int, sink report.Sink) OwnerResult {
	sink = report.OrNop(sink)
	var res OwnerResult
	if uid >= 0 {
		if err := unix.Setuid(uid); err != nil {
			res.UserErr = err
			sink.Error(fmt.Sprintf("failed to set process user %d: %v", uid, err))
		}
	}
	if gid >= 0 {
		if err := unix.Setgid(gid); err != nil {
			res.GroupErr = err
			sink.Error(fmt.Sprintf("failed to set process group %d: %v", gid, err))
		}
	}
	return res
}

// SetProcessUmask applies the process umask. umask(2) cannot fail; the
// previous mask is reported for diagnostics.
func SetProcessUmask(mask int, sink report.Sink) {
	old := unix.Umask(mask)
	report.OrNop(sink).Debug(fmt.Sprintf("umask set to %04o (was %04o)", mask, old))
}
