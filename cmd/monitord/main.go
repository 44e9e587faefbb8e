// monitord is the host entry point for the monitor framework. It wires
// the subcommand registry, configuration, logging, and telemetry around
// the OS abstraction layer. The interval scheduler behind the primary
// "run" command is provided by the host framework, not this binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aralocke/gomonitor/internal/commands"
	"github.com/aralocke/gomonitor/internal/config"
	"github.com/aralocke/gomonitor/internal/identity"
	"github.com/aralocke/gomonitor/internal/report"
	"github.com/aralocke/gomonitor/internal/runner"
	"github.com/aralocke/gomonitor/internal/telemetry"
)

const primaryCommand = "run"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	logger zerolog.Logger
	sink   report.Sink
	cfg    *config.Config
}

func run(args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "monitord").Logger()

	a := &app{
		logger: logger,
		sink:   report.Zerolog{Logger: logger},
	}

	registry := commands.New(primaryCommand)
	if _, err := registry.Register("check", a.check,
		commands.WithDescription("run a single diagnostic command and report its output")); err != nil {
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: monitord <command> [flags] (commands: %s)",
			strings.Join(registry.Names(), ", "))
	}

	name := args[0]
	entry, ok := registry.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown command %q (commands: %s)",
			name, strings.Join(registry.Names(), ", "))
	}
	if err := entry.Flags.Parse(args[1:]); err != nil {
		return err
	}

	if path := entry.ConfigPath(); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.applyIdentity(cfg)
	}

	return entry.Handler(entry.Flags)
}

// applyIdentity resolves and applies the configured process identity and
// umask. Partial privilege drops are reported, not fatal; the monitoring
// loop is expected to keep running.
func (a *app) applyIdentity(cfg *config.Config) {
	uid, gid := -1, -1
	if cfg.Process.User != "" {
		id, ok := identity.ResolveUserID(cfg.Process.User)
		if !ok {
			a.logger.Error().Str("user", cfg.Process.User).Msg("unknown user")
		} else {
			uid = id
		}
	}
	if cfg.Process.Group != "" {
		id, ok := identity.ResolveGroupID(cfg.Process.Group)
		if !ok {
			a.logger.Error().Str("group", cfg.Process.Group).Msg("unknown group")
		} else {
			gid = id
		}
	}
	if uid >= 0 || gid >= 0 {
		identity.SetProcessOwner(uid, gid, a.sink)
	}
	if mask, ok, err := cfg.Process.UmaskValue(); err == nil && ok {
		identity.SetProcessUmask(mask, a.sink)
	}
}

// check executes the remaining arguments as one diagnostic command,
// logging every captured line. With telemetry enabled in the config, the
// run is wrapped in a span carrying the configured attribute expressions.
func (a *app) check(fs *flag.FlagSet) error {
	argv := fs.Args()
	if len(argv) == 0 {
		return errors.New("check: no command given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		span      trace.Span
		evaluator *telemetry.Evaluator
	)
	if a.cfg != nil && a.cfg.Telemetry.Enabled {
		tcfg, err := telemetry.ParseConfig()
		if err != nil {
			return err
		}
		tracer, shutdown, err := telemetry.Setup(tcfg)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				a.logger.Error().Err(err).Msg("telemetry shutdown")
			}
		}()

		evaluator, err = telemetry.NewEvaluator(a.cfg.Telemetry.Attributes)
		if err != nil {
			return err
		}
		ctx, span = tracer.Start(ctx, argv[0])
	}

	out, err := runner.Run(ctx, argv, runner.DefaultOptions())
	if err != nil {
		if span != nil {
			span.SetStatus(codes.Error, err.Error())
			span.End()
		}
		return err
	}

	for _, line := range out.Lines {
		a.logger.Info().Msg(line)
	}
	if out.Interrupted {
		a.logger.Warn().Msg("command interrupted; partial output captured")
	}

	if span != nil {
		if evaluator != nil {
			span.SetAttributes(evaluator.Evaluate(telemetry.RunInfo{
				Argv:  argv,
				Code:  out.Code,
				Lines: out.Lines,
			}, a.sink)...)
		}
		if out.Code != 0 {
			span.SetStatus(codes.Error, fmt.Sprintf("exit code %d", out.Code))
		}
		span.End()
	}

	if out.Interrupted {
		return nil
	}
	if out.Code != 0 {
		return fmt.Errorf("command exited with code %d", out.Code)
	}
	return nil
}
