// Package metrics exposes prometheus counters for command dispatch and
// store failures, and an optional HTTP endpoint to scrape them.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes.
const (
	OutcomeReplied    = "replied"
	OutcomeIgnored    = "ignored"
	OutcomeSilent     = "silent"
	OutcomeSendFailed = "send_failed"
)

// Metrics holds the bot's collectors on a private registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	dispatches  *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atbot",
			Name:      "dispatches_total",
			Help:      "Chat commands dispatched, by verb and outcome.",
		}, []string{"verb", "outcome"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atbot",
			Name:      "store_errors_total",
			Help:      "Profile store failures seen by handlers, by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.dispatches,
		m.storeErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDispatch counts one dispatch.
func (m *Metrics) ObserveDispatch(verb, outcome string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(verb, outcome).Inc()
}

// ObserveStoreError counts one store failure for op ("load" or "save").
func (m *Metrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// Dispatches returns the dispatch counter for tests and dashboards.
func (m *Metrics) Dispatches() *prometheus.CounterVec { return m.dispatches }

// StoreErrors returns the store error counter.
func (m *Metrics) StoreErrors() *prometheus.CounterVec { return m.storeErrors }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Metrics server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down metrics server", "error", err)
		}
		logger.Info("Metrics server stopped.")
		return nil
	}
}
