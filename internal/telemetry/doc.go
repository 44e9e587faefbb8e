// Package telemetry provides OpenTelemetry tracer provider setup and
// per-run span attribute evaluation for executed commands.
//
// Exporter settings come from the standard OTEL environment variables.
// Custom span attributes are configured as expressions evaluated against
// each completed command run (argv, working directory, exit code and
// captured output lines); a failed evaluation skips that attribute and
// never fails the run.
package telemetry
