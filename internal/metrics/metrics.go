// Package metrics exposes Prometheus collectors for the HTTP surface and deal imports.
package metrics

import (
	"errors"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcomes.
const (
	OutcomeSaved     = "saved"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

// Batch statuses.
const (
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_http_requests_total",
		Help: "Total HTTP requests, labeled by route and status code",
	}, []string{"method", "endpoint", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fx_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "endpoint"})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_import_rows_total",
		Help: "Deal rows processed by import, labeled by outcome",
	}, []string{"outcome"})

	ImportBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_import_batches_total",
		Help: "Import batches, labeled by status and rejection code",
	}, []string{"status", "code"})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fx_import_duration_seconds",
		Help:    "Wall time of completed imports",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

// ObserveImport records the outcome of one import call.
// err is the error returned by the import, if any.
func ObserveImport(result *model.ImportResult, err error, elapsed time.Duration) {
	if err != nil {
		if code, ok := rejectionCode(err); ok {
			ImportBatchesTotal.WithLabelValues(StatusRejected, code).Inc()
			return
		}
		ImportBatchesTotal.WithLabelValues(StatusFailed, model.ErrCodeInternalError).Inc()
		return
	}

	ImportBatchesTotal.WithLabelValues(StatusCompleted, "").Inc()
	ImportDuration.Observe(elapsed.Seconds())

	if result == nil {
		return
	}
	ImportRowsTotal.WithLabelValues(OutcomeSaved).Add(float64(result.Saved))
	ImportRowsTotal.WithLabelValues(OutcomeDuplicate).Add(float64(result.Duplicates))
	ImportRowsTotal.WithLabelValues(OutcomeInvalid).Add(float64(result.Invalid))
}

func rejectionCode(err error) (string, bool) {
	if !model.IsBatchRejection(err) {
		return "", false
	}
	for _, sentinel := range []*model.DomainError{model.ErrEmptyFile, model.ErrInvalidFileType, model.ErrInvalidCSV} {
		if errors.Is(err, sentinel) {
			return sentinel.Code, true
		}
	}
	return "", false
}
