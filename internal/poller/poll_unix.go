//go:build unix

package poller

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// pollMillis converts a slice window to poll's millisecond timeout,
// rounding a positive sub-millisecond window up to 1ms so the final slice
// of a deadline loop still blocks instead of spinning on zero-timeout
// polls.
func pollMillis(timeout time.Duration) int {
	ms := int(timeout / time.Millisecond)
	if ms == 0 && timeout > 0 {
		ms = 1
	}
	return ms
}

// pollOnce performs a single bounded poll(2) over both descriptor sets.
// poll holds no kernel registration across calls, so there is nothing to
// release on any exit path.
func pollOnce(readers, writers []int, timeout time.Duration) ([]Event, error) {
	fds := make([]unix.PollFd, 0, len(readers)+len(writers))
	for _, fd := range readers {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	for _, fd := range writers {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLOUT})
	}

	n, err := unix.Poll(fds, pollMillis(timeout))
	if err != nil {
		var errno unix.Errno
		if errors.As(err, &errno) {
			if errno == unix.EINTR {
				return nil, fmt.Errorf("poll interrupted: %w", errno)
			}
			return nil, fmt.Errorf("poll: [%d] %s", int(errno), errno.Error())
		}
		return nil, fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	var events []Event
	for i, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		if pfd.Revents&unix.POLLNVAL != 0 {
			return nil, fmt.Errorf("poll: invalid descriptor %d", pfd.Fd)
		}
		kind := Readable
		if i >= len(readers) {
			kind = Writable
		}
		events = append(events, Event{FD: int(pfd.Fd), Kind: kind})
	}
	return events, nil
}
