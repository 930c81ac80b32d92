// Package check provides an execution engine for named application health
// checks: register check routines once, run them on demand, and collect
// pass/fail/skip/error verdicts suitable for a status page or monitoring
// probe.
//
// # Core Concepts
//
// A Check is a named zero-argument body with a timeout and an optional
// rate-limit interval. A Registry holds checks in registration order and
// runs them sequentially; the order of the returned outcomes is the
// registration order.
//
// # Registering Checks
//
//	reg := check.NewRegistry()
//	reg.Register("database reachable", func() error {
//	    return check.MakeSure(db.Ping() == nil, "database unreachable")
//	})
//	reg.Register("disk space", checkDisk, check.CheckConfig{
//	    Timeout: 2 * time.Second,
//	    Run:     "1 time per hour",
//	})
//
// A body signals failure with MakeSure or Expect, skips itself with Skip,
// and passes by returning nil. Any other returned error, a panic, or a
// timeout yields an error verdict.
//
// # Timeout Enforcement
//
// Two strategies bound a check's wall-clock time. RunAll uses an isolated
// worker: the body runs on its own goroutine and the caller stops waiting
// at the deadline, leaving an overrunning body to finish in the background.
// RunAllPooled dispatches bodies through a bounded worker pool and awaits
// them with a cancellable deadline. In both cases the guarantee is that the
// caller is never blocked longer than the timeout; neither strategy can
// forcibly stop a blocking body that does not cooperate.
//
// # Rate Limiting
//
// A check registered with a Run expression such as "1 time per hour"
// executes at most that often per environment. Within the interval the
// previous verdict is reused with its status preserved exactly; only the
// message gains a "(cached result)" qualifier. Verdicts are persisted per
// environment by a ratelimit.Tracker, so staging and production runs never
// share cached verdicts.
package check
