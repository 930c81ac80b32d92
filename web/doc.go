// Package web exposes a check registry over HTTP without depending on any
// web framework: a JSON status endpoint, a plain-text probe endpoint, a
// Prometheus metrics endpoint, and a standalone server combining all three.
// It consumes only the check package's public contract.
package web
