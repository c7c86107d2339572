package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Configuration lifecycle metrics
	configLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_engine_config_loads_total",
			Help: "Total number of configuration load attempts",
		},
		[]string{"result"},
	)

	configWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_engine_config_warnings_total",
			Help: "Total number of recoverable configuration problems",
		},
		[]string{"section"},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_engine_config_validation_failures_total",
			Help: "Total number of hard validation failures",
		},
		[]string{"section", "field"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_engine_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(configLoadsTotal)
	prometheus.MustRegister(configWarningsTotal)
	prometheus.MustRegister(validationFailuresTotal)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordConfigLoad records the outcome of a configuration load attempt
func RecordConfigLoad(result string) {
	configLoadsTotal.WithLabelValues(result).Inc()
}

// RecordConfigWarning records a recoverable configuration problem
func RecordConfigWarning(section string) {
	configWarningsTotal.WithLabelValues(section).Inc()
}

// RecordValidationFailure records a hard validation failure
func RecordValidationFailure(section, field string) {
	validationFailuresTotal.WithLabelValues(section, field).Inc()
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
