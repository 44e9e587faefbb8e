package poller

import (
	"fmt"
	"time"

	"github.com/aralocke/gomonitor/internal/report"
)

// Kind identifies the readiness a descriptor was registered for.
type Kind int

const (
	Readable Kind = iota
	Writable
)

// Event records one descriptor that became ready.
type Event struct {
	FD   int
	Kind Kind
}

// State classifies the outcome of a Wait call.
type State int

const (
	// Ready means at least one descriptor became ready before the deadline.
	Ready State = iota
	// TimedOut means the deadline passed with no readiness. This is an
	// expected outcome, not a failure.
	TimedOut
	// Failed means the underlying poll primitive failed or was interrupted.
	Failed
)

// Result is the outcome of a Wait call. Events is populated only for
// Ready; Err only for Failed.
type Result struct {
	State   State
	Events  []Event
	Err     error
	Elapsed time.Duration
}

// Clock abstracts wall-clock reads so deadline behavior is testable
// without real sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// slice bounds each poll call so external interruption is observed
// promptly and partial wait duration can be logged.
const slice = 100 * time.Millisecond

type waitConfig struct {
	clock Clock
	sink  report.Sink
	poll  func(readers, writers []int, timeout time.Duration) ([]Event, error)
}

// WaitOption adjusts the behavior of a single Wait call.
type WaitOption func(*waitConfig)

// WithClock substitutes the wall-clock source.
func WithClock(c Clock) WaitOption {
	return func(cfg *waitConfig) { cfg.clock = c }
}

// WithSink routes diagnostic lines from the wait loop.
func WithSink(s report.Sink) WaitOption {
	return func(cfg *waitConfig) { cfg.sink = report.OrNop(s) }
}

// withPollFunc substitutes the poll primitive. Test seam.
func withPollFunc(f func(readers, writers []int, timeout time.Duration) ([]Event, error)) WaitOption {
	return func(cfg *waitConfig) { cfg.poll = f }
}

// WaitRead waits on a single readable descriptor.
func WaitRead(fd int, timeout time.Duration, opts ...WaitOption) Result {
	return Wait([]int{fd}, nil, timeout, opts...)
}

// WaitWrite waits on a single writable descriptor.
func WaitWrite(fd int, timeout time.Duration, opts ...WaitOption) Result {
	return Wait(nil, []int{fd}, timeout, opts...)
}

// Wait blocks until at least one reader becomes readable or one writer
// becomes writable, the timeout elapses, or the poll primitive fails.
// Total blocking time never exceeds timeout; the loop re-polls in bounded
// slices against an absolute deadline.
func Wait(readers, writers []int, timeout time.Duration, opts ...WaitOption) Result {
	cfg := waitConfig{clock: systemClock{}, sink: report.Nop{}, poll: pollOnce}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := cfg.clock.Now()
	deadline := start.Add(timeout)

	for {
		now := cfg.clock.Now()
		if !now.Before(deadline) {
			elapsed := now.Sub(start)
			cfg.sink.Debug(fmt.Sprintf("wait interval completed in %s", elapsed))
			return Result{State: TimedOut, Elapsed: elapsed}
		}

		window := slice
		if remaining := deadline.Sub(now); remaining < window {
			window = remaining
		}

		events, err := cfg.poll(readers, writers, window)
		if err != nil {
			cfg.sink.Error(fmt.Sprintf("poll failed: %v", err))
			return Result{State: Failed, Err: err, Elapsed: cfg.clock.Now().Sub(start)}
		}
		if len(events) > 0 {
			elapsed := cfg.clock.Now().Sub(start)
			cfg.sink.Debug(fmt.Sprintf("wait interval completed in %s", elapsed))
			return Result{State: Ready, Events: events, Elapsed: elapsed}
		}
	}
}
