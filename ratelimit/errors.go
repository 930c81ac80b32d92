package ratelimit

import "errors"

var (
	// ErrInvalidInterval indicates a rate-limit expression could not be
	// parsed. It surfaces at registration time, never at run time.
	ErrInvalidInterval = errors.New("ratelimit: invalid interval expression")
)
