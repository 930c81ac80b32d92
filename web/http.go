package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonwraymond/allgood/check"
)

// HandlerConfig configures the status handlers.
type HandlerConfig struct {
	// Environment is used when the request has no "environment" query
	// parameter. Default: check.DefaultEnvironment.
	Environment string

	// Pooled selects the cooperative bounded-pool strategy instead of the
	// isolated-worker strategy.
	Pooled bool
}

// StatusResponse is the JSON body of the detailed status endpoint.
type StatusResponse struct {
	Status      string          `json:"status"`
	Environment string          `json:"environment"`
	Timestamp   string          `json:"timestamp"`
	Stats       StatsResponse   `json:"stats"`
	Checks      []CheckResponse `json:"checks"`
}

// StatsResponse summarizes one run.
type StatsResponse struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// CheckResponse is one check's outcome, in registration order.
type CheckResponse struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
}

// Handler returns an HTTP handler that runs every check in the registry and
// renders the outcomes as JSON. It responds 200 when nothing failed or
// errored and 503 otherwise, so it can back a monitoring probe directly.
func Handler(reg *check.Registry, config ...HandlerConfig) http.HandlerFunc {
	cfg := handlerConfig(config)

	return func(w http.ResponseWriter, r *http.Request) {
		outcomes := run(reg, cfg, r)
		stats := check.Summarize(outcomes)

		resp := StatusResponse{
			Status:      overall(stats),
			Environment: environment(cfg, r),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Stats: StatsResponse{
				Passed:  stats.Passed,
				Failed:  stats.Failed,
				Skipped: stats.Skipped,
				Errors:  stats.Errors,
			},
			Checks: make([]CheckResponse, 0, len(outcomes)),
		}
		for _, o := range outcomes {
			resp.Checks = append(resp.Checks, CheckResponse{
				Name:       o.Check.Name(),
				Status:     o.Result.Status.String(),
				Message:    o.Result.Message,
				SkipReason: o.Result.SkipReason,
				Duration:   o.Result.Duration.String(),
				Cached:     o.Result.Cached,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if stats.OK() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// ProbeHandler returns a plain-text handler for load balancers and
// schedulers: "OK" with 200 when nothing failed or errored, "UNAVAILABLE"
// with 503 otherwise.
func ProbeHandler(reg *check.Registry, config ...HandlerConfig) http.HandlerFunc {
	cfg := handlerConfig(config)

	return func(w http.ResponseWriter, r *http.Request) {
		stats := check.Summarize(run(reg, cfg, r))

		w.Header().Set("Content-Type", "text/plain")
		if stats.OK() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("UNAVAILABLE"))
	}
}

func handlerConfig(config []HandlerConfig) HandlerConfig {
	cfg := HandlerConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Environment == "" {
		cfg.Environment = check.DefaultEnvironment
	}
	return cfg
}

func environment(cfg HandlerConfig, r *http.Request) string {
	if env := r.URL.Query().Get("environment"); env != "" {
		return env
	}
	return cfg.Environment
}

func run(reg *check.Registry, cfg HandlerConfig, r *http.Request) []check.Outcome {
	env := environment(cfg, r)
	if cfg.Pooled {
		return reg.RunAllPooled(r.Context(), env)
	}
	return reg.RunAll(r.Context(), env)
}

func overall(stats check.Stats) string {
	if stats.OK() {
		return "passing"
	}
	return "failing"
}
