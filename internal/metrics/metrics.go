package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
// It includes counters for commands received and messages sent, and
// histograms for ledger file operations and document generation.
type Metrics struct {
	CommandReceived    *prometheus.CounterVec   // Counter for received menu commands
	SentMessages       *prometheus.CounterVec   // Counter for sent messages
	LedgerFileDuration *prometheus.HistogramVec // Histogram for workbook load/save durations
	ExportGeneration   *prometheus.HistogramVec // Histogram for document generation durations
}

// NewMetrics creates a new Metrics instance with the provided Prometheus Registerer.
//
// Parameters:
//   - reg: A Prometheus Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CommandReceived: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Total number of used commands",
		}, []string{"command"}), // command: start, add_reading, pay, export, ...
		SentMessages: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_messages_sent_total",
			Help: "Output bot activity",
		}, []string{"type"}), // type: text, document, error
		LedgerFileDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_file_operation_duration_seconds",
			Help:    "Duration of ledger workbook loads and saves.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: load, save
		ExportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "export_generation_duration_seconds",
			Help: "Duration of export document generation.",
		}, []string{"format"}), // format: excel, pdf
	}
}
