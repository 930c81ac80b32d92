package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unitDurations maps interval units to their base duration.
var unitDurations = map[string]time.Duration{
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
}

// ParseInterval parses a rate-limit expression of the form
// "<N> time(s) per <unit>" with unit one of minute, hour, day, or week and
// N >= 1, e.g. "1 time per hour" or "3 times per day". The returned
// duration is the minimum period between runs: "3 times per hour" allows a
// run every 20 minutes.
func ParseInterval(expr string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(expr))
	if len(fields) != 4 {
		return 0, fmt.Errorf("%w: %q (want \"<N> time(s) per <unit>\")", ErrInvalidInterval, expr)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: count %q must be a positive integer", ErrInvalidInterval, fields[0])
	}

	if fields[1] != "time" && fields[1] != "times" {
		return 0, fmt.Errorf("%w: %q (want \"time\" or \"times\")", ErrInvalidInterval, fields[1])
	}
	if fields[2] != "per" {
		return 0, fmt.Errorf("%w: %q (want \"per\")", ErrInvalidInterval, fields[2])
	}

	unit, ok := unitDurations[fields[3]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q (want minute, hour, day, or week)", ErrInvalidInterval, fields[3])
	}

	return unit / time.Duration(n), nil
}
