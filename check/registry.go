package check

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/allgood/ratelimit"
)

// instrumentationName identifies this package to OpenTelemetry providers.
const instrumentationName = "github.com/jonwraymond/allgood/check"

// DefaultEnvironment is the environment used when the caller passes an
// empty environment string.
const DefaultEnvironment = "default"

// Tracker gates rate-limited checks and persists their verdicts.
// *ratelimit.Tracker satisfies it.
type Tracker interface {
	// ShouldRun reports whether a check due every `every` must run now in
	// the given environment. When it returns false the returned entry is
	// the persisted verdict to reuse.
	ShouldRun(environment, name string, every time.Duration) (bool, *ratelimit.Entry)

	// Record persists the verdict of a completed attempt.
	Record(environment, name, status, message string) error
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// DefaultTimeout bounds checks registered without an explicit timeout.
	// Default: 10 seconds.
	DefaultTimeout time.Duration

	// PoolSize is the number of worker slots available to RunAllPooled.
	// Default: 4.
	PoolSize int64

	// Tracker persists verdicts of rate-limited checks. When nil, a
	// file-backed tracker rooted in the user cache directory is used.
	Tracker Tracker
}

// Outcome pairs a check with the result of one run.
type Outcome struct {
	Check  *Check
	Result Result
}

// Registry is an ordered collection of checks. Checks execute sequentially
// in registration order; a slow check cannot stall the run beyond its own
// timeout.
type Registry struct {
	mu     sync.RWMutex
	checks []*Check
	names  map[string]struct{}

	config  RegistryConfig
	pool    *semaphore.Weighted
	metrics *metrics
	tracer  trace.Tracer
}

// NewRegistry creates a registry.
func NewRegistry(config ...RegistryConfig) *Registry {
	cfg := RegistryConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 10 * time.Second
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.Tracker == nil {
		cfg.Tracker = ratelimit.NewDefaultTracker()
	}

	return &Registry{
		names:   make(map[string]struct{}),
		config:  cfg,
		pool:    semaphore.NewWeighted(cfg.PoolSize),
		metrics: newMetrics(otel.Meter(instrumentationName)),
		tracer:  otel.Tracer(instrumentationName),
	}
}

// CheckConfig configures a single check at registration time.
type CheckConfig struct {
	// Timeout bounds each run. Default: the registry's DefaultTimeout.
	Timeout time.Duration

	// Run rate-limits the check, e.g. "1 time per hour" or "3 times per
	// day". Empty means the check runs on every invocation.
	Run string
}

// Register adds a named check to the registry. Duplicate names and
// malformed rate-limit expressions are configuration errors reported here,
// never deferred to run time.
func (r *Registry) Register(name string, fn Func, config ...CheckConfig) (*Check, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilFunc, name)
	}

	cfg := CheckConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = r.config.DefaultTimeout
	}

	var every time.Duration
	if cfg.Run != "" {
		parsed, err := ratelimit.ParseInterval(cfg.Run)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", name, err)
		}
		every = parsed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	c := &Check{
		name:    name,
		fn:      fn,
		timeout: cfg.Timeout,
		every:   every,
		expr:    cfg.Run,
	}
	r.names[name] = struct{}{}
	r.checks = append(r.checks, c)
	return c, nil
}

// Checks returns the registered checks in registration order.
func (r *Registry) Checks() []*Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checks := make([]*Check, len(r.checks))
	copy(checks, r.checks)
	return checks
}

// Clear removes every registered check. Persisted rate-limit records are
// untouched; delete the tracker's files to reset those.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checks = nil
	r.names = make(map[string]struct{})
}

// RunAll executes every check sequentially in registration order using the
// isolated-worker strategy: each body runs on its own goroutine and is
// abandoned if it overruns its timeout. Rate-limited checks whose interval
// has not elapsed are served from the tracker with their original status.
func (r *Registry) RunAll(ctx context.Context, environment string) []Outcome {
	return r.runAll(ctx, environment, func(ctx context.Context, c *Check) Result {
		return runIsolated(c.fn, c.timeout)
	})
}

// RunAllPooled is RunAll with the cooperative strategy: bodies are
// dispatched through a bounded worker pool and awaited with a cancellable
// deadline, so blocking bodies are off-loaded rather than run inline.
func (r *Registry) RunAllPooled(ctx context.Context, environment string) []Outcome {
	return r.runAll(ctx, environment, func(ctx context.Context, c *Check) Result {
		return runPooled(ctx, r.pool, c.fn, c.timeout)
	})
}

func (r *Registry) runAll(ctx context.Context, environment string, execute func(context.Context, *Check) Result) []Outcome {
	if environment == "" {
		environment = DefaultEnvironment
	}

	checks := r.Checks()
	outcomes := make([]Outcome, 0, len(checks))
	for _, c := range checks {
		result := r.runOne(ctx, environment, c, execute)
		outcomes = append(outcomes, Outcome{Check: c, Result: result})
	}
	return outcomes
}

// runOne produces exactly one Result for a check: either a reused verdict
// from the tracker or a fresh bounded execution.
func (r *Registry) runOne(ctx context.Context, environment string, c *Check, execute func(context.Context, *Check) Result) Result {
	if c.every > 0 {
		if run, entry := r.config.Tracker.ShouldRun(environment, c.name, c.every); !run {
			if cached, ok := cachedResult(entry); ok {
				r.metrics.record(ctx, environment, c.name, cached)
				return cached
			}
			// Unparseable persisted status: fall through and run.
		}
	}

	ctx, span := r.tracer.Start(ctx, "check.run", trace.WithAttributes(
		attribute.String("check.name", c.name),
		attribute.String("check.environment", environment),
	))
	result := execute(ctx, c)
	span.SetAttributes(attribute.String("check.status", result.Status.String()))
	span.End()

	if c.every > 0 {
		// Record failures are deliberately ignored: the cache degrades to
		// "run every time", it never blocks a run.
		_ = r.config.Tracker.Record(environment, c.name, result.Status.String(), result.Message)
	}

	r.metrics.record(ctx, environment, c.name, result)
	return result
}

// cachedResult converts a persisted entry into a reused verdict. The status
// is preserved exactly; only the message gains a qualifier. SkipReason is
// never set for a cache hit.
func cachedResult(entry *ratelimit.Entry) (Result, bool) {
	status, ok := ParseStatus(entry.Status)
	if !ok {
		return Result{}, false
	}
	return Result{
		Status:  status,
		Message: entry.Message + " (cached result)",
		Cached:  true,
	}, true
}
