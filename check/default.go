package check

import "context"

// defaultRegistry is the documented process-wide registry used by the
// package-level functions. Call Clear to reset it between isolated runs
// (e.g. in tests).
var defaultRegistry = NewRegistry()

// Default returns the process-wide default registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a check to the default registry.
func Register(name string, fn Func, config ...CheckConfig) (*Check, error) {
	return defaultRegistry.Register(name, fn, config...)
}

// MustRegister is Register but panics on configuration errors. Intended for
// package-init registration where a bad interval expression or duplicate
// name should be fatal to startup.
func MustRegister(name string, fn Func, config ...CheckConfig) *Check {
	c, err := defaultRegistry.Register(name, fn, config...)
	if err != nil {
		panic(err)
	}
	return c
}

// RunAll runs every check in the default registry with the isolated-worker
// strategy.
func RunAll(ctx context.Context, environment string) []Outcome {
	return defaultRegistry.RunAll(ctx, environment)
}

// RunAllPooled runs every check in the default registry with the
// cooperative bounded-pool strategy.
func RunAllPooled(ctx context.Context, environment string) []Outcome {
	return defaultRegistry.RunAllPooled(ctx, environment)
}

// Clear removes every check from the default registry.
func Clear() {
	defaultRegistry.Clear()
}
