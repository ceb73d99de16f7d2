// Package metrics exposes ingestion counters for Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cibil"

type Metrics struct {
	Ingestions     *prometheus.CounterVec
	IngestDuration prometheus.Histogram
	PagesExtracted *prometheus.CounterVec
	OCRFailures    *prometheus.CounterVec
	MissingFields  *prometheus.CounterVec
	AccountsParsed *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Ingestions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestions_total",
			Help:      "Report ingestions by outcome.",
		}, []string{"outcome"}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time from PDF path to stored report.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		PagesExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_extracted_total",
			Help:      "Pages read, by source (text_layer or ocr).",
		}, []string{"source"}),
		OCRFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_failures_total",
			Help:      "Page images an OCR engine could not read.",
		}, []string{"engine"}),
		MissingFields: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missing_fields_total",
			Help:      "Headline fields the parser could not find.",
		}, []string{"field"}),
		AccountsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_parsed_total",
			Help:      "Accounts extracted, by status.",
		}, []string{"status"}),
	}
}

// ObserveOutcome counts one finished ingestion.
func (m *Metrics) ObserveOutcome(err error) {
	if err != nil {
		m.Ingestions.WithLabelValues("failed").Inc()
		return
	}
	m.Ingestions.WithLabelValues("succeeded").Inc()
}
