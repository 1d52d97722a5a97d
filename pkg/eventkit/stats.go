package eventkit

import "sync/atomic"

// Stats reports cumulative dispatcher activity.
// Counters are monotonic for the dispatcher's lifetime; Clear does not
// reset them.
type Stats struct {
	// Dispatches is the number of Dispatch calls, including calls on
	// categories with no handlers.
	Dispatches uint64
	// Invocations is the number of handler calls made.
	Invocations uint64
	// Mismatches is the number of handlers skipped on signature mismatch.
	Mismatches uint64
	// Failures is the number of handler calls that returned an error.
	Failures uint64
}

// statsCounters is the internal lock-free representation.
type statsCounters struct {
	dispatches  atomic.Uint64
	invocations atomic.Uint64
	mismatches  atomic.Uint64
	failures    atomic.Uint64
}

// snapshot reads all counters. Values are individually atomic, not a
// consistent cut across counters.
func (c *statsCounters) snapshot() Stats {
	return Stats{
		Dispatches:  c.dispatches.Load(),
		Invocations: c.invocations.Load(),
		Mismatches:  c.mismatches.Load(),
		Failures:    c.failures.Load(),
	}
}
