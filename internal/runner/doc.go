// Package runner executes external diagnostic commands to completion,
// capturing line-oriented output.
//
// Output is drained concurrently with the termination wait so a full pipe
// buffer can never deadlock the child before it exits. A completed Outcome
// is never reported before the child has fully terminated and every
// buffered line has been collected; cancellation hands back the partial
// capture with the Interrupted flag set instead of an error.
package runner
