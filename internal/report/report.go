// Package report defines the diagnostic sink capability shared by the OS
// abstraction layer.
//
// Every component in this module treats its sink as best-effort: a nil or
// absent sink never causes a failure, and nothing a sink does can fail the
// operation that reported through it.
package report

// Sink receives best-effort diagnostic messages from the OS layer.
type Sink interface {
	Debug(msg string)
	Error(msg string)
}

// Nop is a Sink that discards every message. It is the default wherever a
// caller does not supply a sink.
type Nop struct{}

func (Nop) Debug(string) {}
func (Nop) Error(string) {}

// OrNop returns s, or a Nop sink when s is nil, so call sites never have
// to nil-check before reporting.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}

// Recorder is a Sink that retains every message it receives. It exists for
// tests that assert on the diagnostic stream.
type Recorder struct {
	Debugs []string
	Errors []string
}

func (r *Recorder) Debug(msg string) { r.Debugs = append(r.Debugs, msg) }
func (r *Recorder) Error(msg string) { r.Errors = append(r.Errors, msg) }
