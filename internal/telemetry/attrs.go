package telemetry

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.opentelemetry.io/otel/attribute"

	"github.com/aralocke/gomonitor/internal/report"
)

// RunInfo is the evaluation environment exposed to attribute expressions:
// the command argv, working directory, exit code, and captured lines of a
// completed run.
type RunInfo struct {
	Argv  []string
	Dir   string
	Code  int
	Lines []string
}

// Evaluator compiles attribute expressions once and evaluates them
// against completed command runs.
type Evaluator struct {
	names    []string
	programs []*vm.Program
}

// NewEvaluator pre-compiles every expression in attrs. Map keys become
// attribute names; compilation order is sorted by name so evaluation is
// deterministic.
func NewEvaluator(attrs map[string]string) (*Evaluator, error) {
	exprEnv := map[string]interface{}{
		"argv":  []string{},
		"dir":   "",
		"code":  0,
		"lines": []string{},
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	programs := make([]*vm.Program, len(names))
	for i, name := range names {
		program, err := expr.Compile(attrs[name], expr.Env(exprEnv))
		if err != nil {
			return nil, fmt.Errorf("failed to compile expression for attribute %q: %w", name, err)
		}
		programs[i] = program
	}

	return &Evaluator{names: names, programs: programs}, nil
}

// Evaluate runs every compiled expression against info. A failed
// evaluation is reported through the sink and skips that attribute; it
// never fails the command run itself.
func (e *Evaluator) Evaluate(info RunInfo, sink report.Sink) []attribute.KeyValue {
	if len(e.names) == 0 {
		return nil
	}
	sink = report.OrNop(sink)

	env := map[string]interface{}{
		"argv":  info.Argv,
		"dir":   info.Dir,
		"code":  info.Code,
		"lines": info.Lines,
	}

	var attrs []attribute.KeyValue
	for i, name := range e.names {
		output, err := expr.Run(e.programs[i], env)
		if err != nil {
			sink.Error(fmt.Sprintf("failed to evaluate expression for attribute %q: %v", name, err))
			continue
		}
		attrs = append(attrs, toAttribute(name, output))
	}
	return attrs
}

func toAttribute(name string, v interface{}) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(name, val)
	case bool:
		return attribute.Bool(name, val)
	case int:
		return attribute.Int(name, val)
	case int64:
		return attribute.Int64(name, val)
	case float64:
		return attribute.Float64(name, val)
	default:
		return attribute.String(name, fmt.Sprintf("%v", val))
	}
}
