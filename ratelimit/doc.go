// Package ratelimit parses "N time(s) per unit" interval expressions and
// persists per-environment check verdicts in plain JSON files, one file per
// environment, written atomically and read fail-open.
package ratelimit
