// Package instrument provides optional observability for the ripple core:
// a Prometheus-backed implementation of ripple.Hooks and an OpenTelemetry
// span wrapper for transactions. The core has no dependency on this package;
// installation is one SetHooks call at startup.
package instrument

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus hooks collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "ripple").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus hooks collector.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "ripple",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements ripple.Hooks on top of Prometheus metrics.
//
// Metrics collected:
//   - ripple_value_writes_total{changed}: Counter of value writes, split by
//     whether the write survived equality suppression
//   - ripple_set_deltas_total: Counter of delivered set deltas
//   - ripple_delta_elements_total{kind}: Counter of delta elements by
//     inserted/removed
//   - ripple_transactions_total: Counter of outermost transactions
//   - ripple_active_subscriptions: Gauge of live subscriptions
//
// Example:
//
//	ripple.SetHooks(instrument.Metrics())
type Collector struct {
	valueWrites         *prometheus.CounterVec
	setDeltas           prometheus.Counter
	deltaElements       *prometheus.CounterVec
	transactions        prometheus.Counter
	activeSubscriptions prometheus.Gauge
}

// Metrics creates a Collector with its metrics registered on the configured
// registry.
func Metrics(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		valueWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "value_writes_total",
			Help:        "Total number of observable value writes",
			ConstLabels: config.ConstLabels,
		}, []string{"changed"}),

		setDeltas: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "set_deltas_total",
			Help:        "Total number of delivered set change deltas",
			ConstLabels: config.ConstLabels,
		}),

		deltaElements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "delta_elements_total",
			Help:        "Total number of elements carried by set deltas",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		transactions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transactions_total",
			Help:        "Total number of outermost transactions",
			ConstLabels: config.ConstLabels,
		}),

		activeSubscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_subscriptions",
			Help:        "Number of live observable subscriptions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ValueWritten implements ripple.Hooks.
func (c *Collector) ValueWritten(changed bool) {
	c.valueWrites.WithLabelValues(strconv.FormatBool(changed)).Inc()
}

// DeltaPublished implements ripple.Hooks.
func (c *Collector) DeltaPublished(inserted, removed int) {
	c.setDeltas.Inc()
	if inserted > 0 {
		c.deltaElements.WithLabelValues("inserted").Add(float64(inserted))
	}
	if removed > 0 {
		c.deltaElements.WithLabelValues("removed").Add(float64(removed))
	}
}

// TransactionBegan implements ripple.Hooks.
func (c *Collector) TransactionBegan() {
	c.transactions.Inc()
}

// TransactionEnded implements ripple.Hooks.
func (c *Collector) TransactionEnded() {}

// SubscriberAdded implements ripple.Hooks.
func (c *Collector) SubscriberAdded() {
	c.activeSubscriptions.Inc()
}

// SubscriberRemoved implements ripple.Hooks.
func (c *Collector) SubscriberRemoved() {
	c.activeSubscriptions.Dec()
}
