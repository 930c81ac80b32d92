// Package config loads optional YAML configuration for the check engine:
// the environment name, the rate-limit cache directory, the default check
// timeout, and per-check overrides. The engine itself never reads
// configuration; callers load a Config and apply it when building their
// registry.
//
//	environment: production
//	cache_dir: /var/cache/allgood
//	default_timeout: 10s
//	checks:
//	  disk space:
//	    timeout: 2s
//	    run: 1 time per hour
package config
