// Package metrics instruments pipeline runs for Prometheus scraping.
// Primarily useful in watch mode, where the process is long-lived.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/salience/analysis"
)

// Metrics holds the pipeline collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal   prometheus.Counter
	runFailures prometheus.Counter
	documents   prometheus.Counter
	runDuration prometheus.Histogram
	vocabSize   prometheus.Gauge
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salience_runs_total",
			Help: "Completed pipeline runs.",
		}),
		runFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salience_run_failures_total",
			Help: "Pipeline runs that aborted with an error.",
		}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salience_documents_processed_total",
			Help: "Documents processed across all runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "salience_run_duration_seconds",
			Help:    "Pipeline run duration.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		vocabSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "salience_vocabulary_size",
			Help: "Selected global vocabulary size of the last run.",
		}),
	}

	registry.MustRegister(m.runsTotal, m.runFailures, m.documents, m.runDuration, m.vocabSize)
	return m
}

// ObserveRun records the outcome of one pipeline run.
func (m *Metrics) ObserveRun(result *analysis.Result, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.runFailures.Inc()
		return
	}
	m.runsTotal.Inc()
	m.documents.Add(float64(result.TotalDocuments))
	m.runDuration.Observe(result.Duration.Seconds())
	m.vocabSize.Set(float64(len(result.Vocabulary)))
}

// Handler returns the scrape handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	}
}
