//go:build unix

package poller

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aralocke/gomonitor/internal/report"
)

func TestWait_ReadableWithinTimeout(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_, _ = pw.Write([]byte("x"))
	}()

	start := time.Now()
	res := WaitRead(int(pr.Fd()), 5*time.Second)

	assert.Equal(t, Ready, res.State)
	require.Len(t, res.Events, 1)
	assert.Equal(t, int(pr.Fd()), res.Events[0].FD)
	assert.Equal(t, Readable, res.Events[0].Kind)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWait_TimeoutIsNotAFailure(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	start := time.Now()
	res := WaitRead(int(pr.Fd()), 300*time.Millisecond)
	elapsed := time.Since(start)

	assert.Equal(t, TimedOut, res.State)
	assert.Empty(t, res.Events)
	assert.NoError(t, res.Err)
	// Slice granularity allows a modest overshoot past the deadline.
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestWait_WriterImmediatelyReady(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	res := WaitWrite(int(pw.Fd()), time.Second)

	assert.Equal(t, Ready, res.State)
	require.Len(t, res.Events, 1)
	assert.Equal(t, int(pw.Fd()), res.Events[0].FD)
	assert.Equal(t, Writable, res.Events[0].Kind)
}

func TestWait_ReadersAndWritersTogether(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	// The reader stays idle; only the write end reports readiness.
	res := Wait([]int{int(pr.Fd())}, []int{int(pw.Fd())}, time.Second)

	assert.Equal(t, Ready, res.State)
	require.Len(t, res.Events, 1)
	assert.Equal(t, Writable, res.Events[0].Kind)
}

func TestWait_InvalidDescriptorFails(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	fd := int(pr.Fd())
	require.NoError(t, pr.Close())
	defer pw.Close()

	rec := &report.Recorder{}
	res := WaitRead(fd, time.Second, WithSink(rec))

	assert.Equal(t, Failed, res.State)
	require.Error(t, res.Err)
	assert.NotEmpty(t, rec.Errors)
}

func TestWait_SinkReceivesDuration(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	rec := &report.Recorder{}
	res := WaitRead(int(pr.Fd()), 100*time.Millisecond, WithSink(rec))

	assert.Equal(t, TimedOut, res.State)
	require.NotEmpty(t, rec.Debugs)
	assert.Contains(t, rec.Debugs[0], "wait interval completed")
}

// fakeClock advances a fixed step on every Now call so the deadline loop
// can be exercised without real sleeping.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestWait_DeterministicDeadline(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), step: 40 * time.Millisecond}

	polls := 0
	stub := func(_, _ []int, window time.Duration) ([]Event, error) {
		polls++
		assert.LessOrEqual(t, window, slice)
		return nil, nil
	}

	res := Wait([]int{7}, nil, 200*time.Millisecond,
		WithClock(clock), withPollFunc(stub))

	assert.Equal(t, TimedOut, res.State)
	assert.Positive(t, polls)
	assert.GreaterOrEqual(t, res.Elapsed, 200*time.Millisecond)
}

func TestWait_StubReadiness(t *testing.T) {
	stub := func(readers, _ []int, _ time.Duration) ([]Event, error) {
		return []Event{{FD: readers[0], Kind: Readable}}, nil
	}

	res := Wait([]int{42}, nil, time.Second, withPollFunc(stub))

	assert.Equal(t, Ready, res.State)
	require.Len(t, res.Events, 1)
	assert.Equal(t, 42, res.Events[0].FD)
}

func TestPollMillis(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    int
	}{
		{0, 0},
		{500 * time.Microsecond, 1},
		{time.Millisecond, 1},
		{1500 * time.Microsecond, 1},
		{100 * time.Millisecond, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pollMillis(tt.timeout), "timeout %s", tt.timeout)
	}
}

func TestPollOnce_SubMillisecondWindowBlocks(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pr.Close()
	defer pw.Close()

	start := time.Now()
	events, err := pollOnce([]int{int(pr.Fd())}, nil, 500*time.Microsecond)
	require.NoError(t, err)

	assert.Empty(t, events)
	// The window rounds up to 1ms rather than degenerating into a
	// non-blocking poll.
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Microsecond)
}

func TestWait_ZeroTimeout(t *testing.T) {
	res := Wait([]int{7}, nil, 0, withPollFunc(func(_, _ []int, _ time.Duration) ([]Event, error) {
		t.Fatal("poll should not be called with a zero timeout")
		return nil, nil
	}))

	assert.Equal(t, TimedOut, res.State)
}
