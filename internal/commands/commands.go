// Package commands lets the host CLI accept pluggable named subcommands
// while protecting the registry's own primary command name.
//
// The registry is populated once during single-threaded startup and
// read-only afterwards; no locking discipline is required.
package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
)

// HandlerFunc runs a registered subcommand. The FlagSet hands the handler
// its parsed command-specific options.
type HandlerFunc func(fs *flag.FlagSet) error

// RegistrationError reports a rejected Register call. A registration
// failure is fatal to the call, never to the process.
type RegistrationError struct {
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("commands: register %q: %s", e.Name, e.Reason)
}

// Entry pairs a registered subcommand with its handler and sub-parser.
type Entry struct {
	Name    string
	Handler HandlerFunc
	Flags   *flag.FlagSet

	config *string
}

// ConfigPath returns the value of the entry's --config option. Valid only
// after Flags.Parse.
func (e *Entry) ConfigPath() string {
	return *e.config
}

// Registry stores subcommand registrations for the host argument parser.
type Registry struct {
	primary string
	entries map[string]*Entry
}

// New creates a registry that reserves primary as a protected name.
func New(primary string) *Registry {
	return &Registry{
		primary: primary,
		entries: make(map[string]*Entry),
	}
}

type parserOptions struct {
	description string
	errorMode   flag.ErrorHandling
	output      io.Writer
}

// Option adjusts how a subcommand's sub-parser is constructed.
type Option func(*parserOptions)

// WithDescription sets the usage description printed for the subcommand.
func WithDescription(desc string) Option {
	return func(po *parserOptions) { po.description = desc }
}

// WithErrorHandling overrides the sub-parser's error handling mode. The
// default is flag.ContinueOnError so parse failures surface as errors
// instead of exiting the process.
func WithErrorHandling(mode flag.ErrorHandling) Option {
	return func(po *parserOptions) { po.errorMode = mode }
}

// WithOutput routes the sub-parser's usage and error output.
func WithOutput(w io.Writer) Option {
	return func(po *parserOptions) { po.output = w }
}

// Register stores handler under name and creates its sub-parser. The
// returned FlagSet already carries the standard --config option; the
// caller adds command-specific options to it before parsing.
//
// Registration is validated before any registry or parser state changes:
// a nil handler, a name equal to the primary command, or a duplicate name
// leaves the registry exactly as it was.
func (r *Registry) Register(name string, handler HandlerFunc, opts ...Option) (*flag.FlagSet, error) {
	if handler == nil {
		return nil, &RegistrationError{Name: name, Reason: "handler is not callable"}
	}
	if name == r.primary {
		return nil, &RegistrationError{Name: name, Reason: "collides with the primary command"}
	}
	if _, ok := r.entries[name]; ok {
		return nil, &RegistrationError{Name: name, Reason: "already registered"}
	}

	po := parserOptions{errorMode: flag.ContinueOnError}
	for _, opt := range opts {
		opt(&po)
	}

	fs := flag.NewFlagSet(name, po.errorMode)
	if po.output != nil {
		fs.SetOutput(po.output)
	}
	if po.description != "" {
		desc := po.description
		fs.Usage = func() {
			fmt.Fprintf(fs.Output(), "%s: %s\n", name, desc)
			fs.PrintDefaults()
		}
	}

	entry := &Entry{Name: name, Handler: handler, Flags: fs}
	entry.config = fs.String("config", "", "Path to the config file")
	r.entries[name] = entry
	return fs, nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered subcommand names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Primary returns the reserved primary command name.
func (r *Registry) Primary() string {
	return r.primary
}
