package check

import "errors"

var (
	// ErrTimeout is returned by the executor when a check body does not
	// finish within its timeout.
	ErrTimeout = errors.New("check: timeout exceeded")

	// ErrDuplicateName indicates a check name is already registered.
	ErrDuplicateName = errors.New("check: duplicate check name")

	// ErrEmptyName indicates a check was registered without a name.
	ErrEmptyName = errors.New("check: name must not be empty")

	// ErrNilFunc indicates a check was registered without a body.
	ErrNilFunc = errors.New("check: body must not be nil")
)
