package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// passedMessage is the message for a body that returned nil.
const passedMessage = "Check passed"

// runIsolated executes fn on a dedicated goroutine and waits at most timeout
// for it to finish. If the deadline elapses first the caller returns an
// error verdict immediately; the goroutine is abandoned and left to finish
// on its own, since a blocking body cannot be interrupted without
// cooperation. The guarantee is that the caller never waits past the
// timeout, not that the underlying work stopped.
func runIsolated(fn Func, timeout time.Duration) Result {
	start := time.Now()
	done := make(chan error, 1)

	go func() {
		done <- invoke(fn)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return verdict(err, time.Since(start))
	case <-timer.C:
		return timeoutVerdict(timeout, time.Since(start))
	}
}

// runPooled executes fn through a bounded pool and awaits it with a
// deadline. Slot acquisition honors the deadline too, so a pool saturated
// with abandoned workers cannot stall the caller past the bound.
func runPooled(ctx context.Context, pool *semaphore.Weighted, fn Func, timeout time.Duration) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutVerdict(timeout, time.Since(start))
		}
		return Errored(err.Error()).WithDuration(time.Since(start))
	}

	done := make(chan error, 1)
	go func() {
		defer pool.Release(1)
		done <- invoke(fn)
	}()

	select {
	case err := <-done:
		return verdict(err, time.Since(start))
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return timeoutVerdict(timeout, time.Since(start))
		}
		return Errored(ctx.Err().Error()).WithDuration(time.Since(start))
	}
}

// invoke runs a check body, converting a panic into an error so a
// misbehaving check cannot take the process down.
func invoke(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return fn()
}

// verdict maps a body's returned error to a Result.
func verdict(err error, elapsed time.Duration) Result {
	var assertErr *AssertionError
	var skipErr *SkipError

	switch {
	case err == nil:
		return Passed(passedMessage).WithDuration(elapsed)
	case errors.As(err, &assertErr):
		return Failed(assertErr.Message).WithDuration(elapsed)
	case errors.As(err, &skipErr):
		return Skipped(skipErr.Reason).WithDuration(elapsed)
	default:
		return Errored(err.Error()).WithDuration(elapsed)
	}
}

// timeoutVerdict builds the error verdict for a deadline overrun. The
// message always contains the word "timeout"; consumers key off it.
func timeoutVerdict(timeout, elapsed time.Duration) Result {
	return Errored(fmt.Sprintf("timeout after %s", timeout)).WithDuration(elapsed)
}
