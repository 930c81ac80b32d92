package check

import (
	"time"
)

// Status represents the outcome of a check run.
type Status int

const (
	// StatusPassed indicates the check body completed without failing.
	StatusPassed Status = iota
	// StatusFailed indicates an assertion in the check body did not hold.
	StatusFailed
	// StatusSkipped indicates the check body declined to run.
	StatusSkipped
	// StatusError indicates the check body raised an unexpected error or timed out.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseStatus parses a persisted status string. The second return value
// reports whether the string named a known status.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "passed":
		return StatusPassed, true
	case "failed":
		return StatusFailed, true
	case "skipped":
		return StatusSkipped, true
	case "error":
		return StatusError, true
	default:
		return StatusError, false
	}
}

// Result contains the outcome of a single check run.
type Result struct {
	// Status is the verdict of the run.
	Status Status

	// Message provides human-readable context about the verdict.
	Message string

	// SkipReason is set only when the check body itself skipped.
	// It is never set for a verdict served from the rate-limit cache.
	SkipReason string

	// Duration is how long the attempt took. For a timed-out run this is
	// close to the configured timeout, not the body's actual running time.
	Duration time.Duration

	// Cached reports whether this verdict was served from the rate-limit
	// cache instead of a fresh run. It affects message formatting only,
	// never the status.
	Cached bool
}

// Passed creates a passing result.
func Passed(message string) Result {
	return Result{Status: StatusPassed, Message: message}
}

// Failed creates a failing result.
func Failed(message string) Result {
	return Result{Status: StatusFailed, Message: message}
}

// Skipped creates a skipped result with the given reason.
func Skipped(reason string) Result {
	return Result{Status: StatusSkipped, Message: "Check skipped", SkipReason: reason}
}

// Errored creates an error result.
func Errored(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Func is a check body. It returns nil to pass, an *AssertionError (usually
// via MakeSure or Expect) to fail, an *SkipError (via Skip) to skip, or any
// other error to report an error verdict.
type Func func() error

// Check is a named check routine plus its timeout and rate-limit policy.
// A Check is immutable once registered.
type Check struct {
	name    string
	fn      Func
	timeout time.Duration
	every   time.Duration
	expr    string
}

// Name returns the unique name of the check.
func (c *Check) Name() string { return c.name }

// Timeout returns the wall-clock bound applied to each run.
func (c *Check) Timeout() time.Duration { return c.timeout }

// Every returns the minimum period between real runs. Zero means the check
// runs on every invocation.
func (c *Check) Every() time.Duration { return c.every }

// Interval returns the original rate-limit expression, e.g. "1 time per hour".
// Empty when the check is not rate limited.
func (c *Check) Interval() string { return c.expr }

// Stats summarizes the outcomes of one run of a registry.
type Stats struct {
	Passed  int
	Failed  int
	Skipped int
	Errors  int
}

// Total returns the number of outcomes summarized.
func (s Stats) Total() int {
	return s.Passed + s.Failed + s.Skipped + s.Errors
}

// OK reports whether nothing failed or errored. Skipped checks do not count
// against overall health.
func (s Stats) OK() bool {
	return s.Failed == 0 && s.Errors == 0
}

// Summarize computes run statistics from an ordered outcome list.
func Summarize(outcomes []Outcome) Stats {
	var stats Stats
	for _, o := range outcomes {
		switch o.Result.Status {
		case StatusPassed:
			stats.Passed++
		case StatusFailed:
			stats.Failed++
		case StatusSkipped:
			stats.Skipped++
		case StatusError:
			stats.Errors++
		}
	}
	return stats
}
