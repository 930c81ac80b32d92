package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jonwraymond/allgood/check"
)

// Serve runs a standalone status server: the JSON status page on "/", the
// plain-text probe on "/healthz", and Prometheus metrics on "/metrics". It
// blocks until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, reg *check.Registry, config ...HandlerConfig) error {
	metricsHandler, err := MetricsHandler()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", Handler(reg, config...))
	mux.Handle("/healthz", ProbeHandler(reg, config...))
	mux.Handle("/metrics", metricsHandler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
