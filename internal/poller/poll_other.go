//go:build !unix

package poller

import (
	"errors"
	"time"
)

// ErrUnsupported reports that readiness multiplexing is unavailable on
// this platform.
var ErrUnsupported = errors.New("poller: readiness multiplexing unsupported on this platform")

func pollOnce(_, _ []int, _ time.Duration) ([]Event, error) {
	return nil, ErrUnsupported
}
