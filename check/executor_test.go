package check

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/sync/semaphore"
)

func TestRunIsolated_Pass(t *testing.T) {
	result := runIsolated(func() error {
		time.Sleep(10 * time.Millisecond)
		return nil
	}, time.Second)

	if result.Status != StatusPassed {
		t.Fatalf("status = %v, want StatusPassed", result.Status)
	}
	if result.Message != "Check passed" {
		t.Errorf("message = %q, want 'Check passed'", result.Message)
	}
	if result.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestRunIsolated_Timeout(t *testing.T) {
	start := time.Now()
	result := runIsolated(func() error {
		time.Sleep(500 * time.Millisecond)
		return nil
	}, 50*time.Millisecond)
	elapsed := time.Since(start)

	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(strings.ToLower(result.Message), "timeout") {
		t.Errorf("message = %q, want it to contain 'timeout'", result.Message)
	}
	// The caller must return close to the timeout, not close to the body's
	// actual running time.
	if elapsed > 250*time.Millisecond {
		t.Errorf("caller blocked for %v, want well under the body's 500ms", elapsed)
	}
}

func TestRunIsolated_AssertionFailure(t *testing.T) {
	result := runIsolated(func() error {
		return MakeSure(false, "boom")
	}, time.Second)

	if result.Status != StatusFailed {
		t.Fatalf("status = %v, want StatusFailed", result.Status)
	}
	if result.Message != "boom" {
		t.Errorf("message = %q, want 'boom'", result.Message)
	}
}

func TestRunIsolated_Skip(t *testing.T) {
	result := runIsolated(func() error {
		return Skip("not configured")
	}, time.Second)

	if result.Status != StatusSkipped {
		t.Fatalf("status = %v, want StatusSkipped", result.Status)
	}
	if result.SkipReason != "not configured" {
		t.Errorf("skip reason = %q, want 'not configured'", result.SkipReason)
	}
}

func TestRunIsolated_UnhandledError(t *testing.T) {
	result := runIsolated(func() error {
		return errors.New("connection refused")
	}, time.Second)

	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
	if result.Message != "connection refused" {
		t.Errorf("message = %q, want 'connection refused'", result.Message)
	}
}

func TestRunIsolated_Panic(t *testing.T) {
	result := runIsolated(func() error {
		panic("nil map write")
	}, time.Second)

	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(result.Message, "nil map write") {
		t.Errorf("message = %q, want it to mention the panic value", result.Message)
	}
}

func TestRunPooled_Pass(t *testing.T) {
	pool := semaphore.NewWeighted(2)
	result := runPooled(context.Background(), pool, func() error {
		time.Sleep(10 * time.Millisecond)
		return nil
	}, time.Second)

	if result.Status != StatusPassed {
		t.Fatalf("status = %v, want StatusPassed", result.Status)
	}
}

func TestRunPooled_Timeout(t *testing.T) {
	pool := semaphore.NewWeighted(2)

	start := time.Now()
	result := runPooled(context.Background(), pool, func() error {
		time.Sleep(500 * time.Millisecond)
		return nil
	}, 50*time.Millisecond)
	elapsed := time.Since(start)

	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(strings.ToLower(result.Message), "timeout") {
		t.Errorf("message = %q, want it to contain 'timeout'", result.Message)
	}
	if elapsed > 250*time.Millisecond {
		t.Errorf("caller blocked for %v, want well under the body's 500ms", elapsed)
	}
}

func TestRunPooled_SaturatedPool(t *testing.T) {
	// A pool with no free slots must still respect the deadline.
	pool := semaphore.NewWeighted(1)
	if !pool.TryAcquire(1) {
		t.Fatal("could not saturate pool")
	}
	defer pool.Release(1)

	start := time.Now()
	result := runPooled(context.Background(), pool, func() error {
		return nil
	}, 50*time.Millisecond)
	elapsed := time.Since(start)

	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
	if !strings.Contains(strings.ToLower(result.Message), "timeout") {
		t.Errorf("message = %q, want it to contain 'timeout'", result.Message)
	}
	if elapsed > 250*time.Millisecond {
		t.Errorf("caller blocked for %v waiting on a full pool", elapsed)
	}
}

func TestRunPooled_CancelledContext(t *testing.T) {
	pool := semaphore.NewWeighted(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := runPooled(ctx, pool, func() error { return nil }, time.Second)
	if result.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", result.Status)
	}
}
