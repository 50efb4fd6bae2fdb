package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lectern-dev/lectern/pkg/nav"
)

// MetricsConfig configures the Prometheus navigation observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lectern").
	Namespace string

	// Subsystem is the metrics subsystem (default: "nav").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registerer to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus navigation observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "lectern",
		Subsystem: "nav",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a nav.Observer recording navigation outcomes in Prometheus.
// Create one per registry; registering the same collectors twice panics,
// as usual with promauto.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationFaults   *prometheus.CounterVec
	inflight           prometheus.Gauge
}

// NewMetrics creates the observer and registers its collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Navigations by kind and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		navigationFaults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_faults_total",
			Help:        "Navigations that ended in a handler or gate fault",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_inflight",
			Help:        "Navigations currently being processed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// NavigationStarted implements nav.Observer.
func (m *Metrics) NavigationStarted(nav.Kind, string) {
	m.inflight.Inc()
}

// NavigationFinished implements nav.Observer.
func (m *Metrics) NavigationFinished(kind nav.Kind, _ string, status nav.Status, err error, elapsed time.Duration) {
	m.inflight.Dec()
	m.navigationsTotal.WithLabelValues(kind.String(), status.String()).Inc()
	m.navigationDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
	if err != nil {
		m.navigationFaults.WithLabelValues(kind.String()).Inc()
	}
}
