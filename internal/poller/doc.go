// Package poller multiplexes readiness across reader and writer
// descriptor sets with a wall-clock deadline.
//
// Wait re-polls in bounded 100ms slices rather than issuing one blocking
// poll for the full timeout: that bounds unresponsiveness to external
// interruption and lets the wait loop report partial wait durations
// through its diagnostic sink.
//
// Outcomes are explicit variants (Ready, TimedOut, Failed) so callers
// handle "nothing became ready" and "the poll primitive failed"
// distinctly. Descriptor ownership stays with the caller: handles must
// remain valid for the duration of a Wait call.
package poller
