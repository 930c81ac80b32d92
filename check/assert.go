package check

import (
	"fmt"
	"reflect"
)

// AssertionError signals that a condition inside a check body did not hold.
// The executor maps it to a Failed verdict carrying the message.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return e.Message }

// SkipError signals that a check body declined to run. The executor maps it
// to a Skipped verdict carrying the reason.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// MakeSure returns nil when cond holds and an *AssertionError carrying
// message when it does not. Check bodies return it directly:
//
//	reg.Register("queue drained", func() error {
//	    return check.MakeSure(queue.Len() == 0, "queue not drained")
//	})
func MakeSure(cond bool, message string) error {
	if cond {
		return nil
	}
	return &AssertionError{Message: message}
}

// Expect compares got against want with deep equality and returns an
// *AssertionError describing the mismatch when they differ.
func Expect(got, want any) error {
	if reflect.DeepEqual(got, want) {
		return nil
	}
	return &AssertionError{Message: fmt.Sprintf("expected %v, got %v", want, got)}
}

// Skip returns an *SkipError that marks the current run as skipped.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}
