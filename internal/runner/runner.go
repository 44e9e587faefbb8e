package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Options controls a single command invocation.
type Options struct {
	// MergeStderr interleaves the child's stderr into the captured output
	// stream. When false, stderr is discarded.
	MergeStderr bool
	// Dir is the child's working directory. Empty means inherit.
	Dir string
}

// DefaultOptions matches the common diagnostic-command case: stderr
// merged, working directory inherited.
func DefaultOptions() Options {
	return Options{MergeStderr: true}
}

// Outcome is the result of a command invocation.
type Outcome struct {
	// Code is the child's exit code. It is defined only once the child has
	// fully terminated; on interruption it is -1.
	Code int
	// Lines holds every non-empty, whitespace-trimmed output line in the
	// order the child produced them.
	Lines []string
	// Interrupted is true when the context was canceled before the child
	// terminated. Lines then holds the partial capture.
	Interrupted bool
}

// Run spawns argv as a child process and drains its output until it
// terminates. The argument vector goes to the OS process-creation
// primitive as-is; no shell is involved. Only spawn-level failures
// (executable not found, permission denied) are returned as errors;
// everything after a successful start is reported through the Outcome.
func Run(ctx context.Context, argv []string, opts Options) (Outcome, error) {
	if len(argv) == 0 {
		return Outcome{}, errors.New("runner: empty argument vector")
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return Outcome{}, fmt.Errorf("runner: output pipe: %w", err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdout = pw
	if opts.MergeStderr {
		cmd.Stderr = pw
	}

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return Outcome{}, fmt.Errorf("runner: start %s: %w", argv[0], err)
	}
	// The child holds its own copies of the write end; release ours so the
	// read side sees EOF when the child exits.
	_ = pw.Close()
	defer func() {
		_ = pr.Close()
	}()

	quit := make(chan struct{})
	defer close(quit)

	lines := make(chan string)
	go func() {
		defer close(lines)
		// ReadString grows its buffer to fit the line, so arbitrarily long
		// output cannot stall the drain and deadlock the child against a
		// full pipe. A read error still hands back the partial final line.
		reader := bufio.NewReader(pr)
		for {
			line, err := reader.ReadString('\n')
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				select {
				case lines <- trimmed:
				case <-quit:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var out []string
	for {
		select {
		case <-ctx.Done():
			return Outcome{Code: -1, Lines: out, Interrupted: true}, nil
		case line, ok := <-lines:
			if ok {
				out = append(out, line)
				continue
			}
			// Output fully drained; the exit code is only defined once the
			// child has terminated.
			select {
			case err := <-done:
				return Outcome{Code: exitCode(err), Lines: out}, nil
			case <-ctx.Done():
				return Outcome{Code: -1, Lines: out, Interrupted: true}, nil
			}
		}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
