package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks invoice rendering and export outcomes.
type ExportMetrics struct {
	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
}

var (
	exportMetricsOnce sync.Once
	exportMetrics     *ExportMetrics
)

func Export() *ExportMetrics {
	return ExportWithConfig(Config{})
}

func ExportWithConfig(cfg Config) *ExportMetrics {
	exportMetricsOnce.Do(func() {
		exportMetrics = newExportMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return exportMetrics
}

func ResetExportMetricsForTest() {
	exportMetricsOnce = sync.Once{}
	exportMetrics = nil
}

func newExportMetrics(registerer prometheus.Registerer, cfg Config) *ExportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels(cfg.labels())

	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "storefront_invoice_exports_total",
			Help:        "Total invoice export attempts.",
			ConstLabels: constLabels,
		},
		[]string{"kind", "result"}, // kind: print | download; result: success | failed
	)

	exportDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "storefront_invoice_export_duration_seconds",
			Help:        "Time spent rendering and assembling an invoice document.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	registerer.MustRegister(
		exportsTotal,
		exportDuration,
	)

	return &ExportMetrics{
		exportsTotal:   exportsTotal,
		exportDuration: exportDuration,
	}
}

func (m *ExportMetrics) IncExport(kind, result string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(kind, result).Inc()
}

func (m *ExportMetrics) ObserveExportDuration(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.exportDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}
