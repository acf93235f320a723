// Package metrics exports the activity of streams, signals and loops as
// Prometheus metrics.
//
// Example:
//
//	c := metrics.New(metrics.WithNamespace("myapp"))
//	c.Install()
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"github.com/AnatoleLucet/frp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "frp").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for listeners reached per emission.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "frp",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records stream and timer activity. It implements frp.Observer
// and is safe to share between goroutines.
type Collector struct {
	listenersActive prometheus.Gauge
	subscriptions   prometheus.Counter
	emissions       prometheus.Counter
	deliveries      prometheus.Counter
	fanout          prometheus.Histogram
	timersPending   prometheus.Gauge
	timersFired     prometheus.Counter
	timersStopped   prometheus.Counter
}

var _ frp.Observer = (*Collector)(nil)

// New creates a collector and registers its metrics. It panics if the
// metrics are already registered on the registry, like promauto does.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		listenersActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_active",
			Help:        "Number of listeners currently subscribed to a stream",
			ConstLabels: config.ConstLabels,
		}),

		subscriptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscriptions_total",
			Help:        "Total number of listeners subscribed",
			ConstLabels: config.ConstLabels,
		}),

		emissions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "emissions_total",
			Help:        "Total number of events emitted on streams",
			ConstLabels: config.ConstLabels,
		}),

		deliveries: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deliveries_total",
			Help:        "Total number of events delivered to listeners",
			ConstLabels: config.ConstLabels,
		}),

		fanout: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "emission_fanout",
			Help:        "Listeners reached by a single emission",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		timersPending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "timers_pending",
			Help:        "Number of loop timers waiting to fire",
			ConstLabels: config.ConstLabels,
		}),

		timersFired: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "timers_fired_total",
			Help:        "Total number of loop timers fired",
			ConstLabels: config.ConstLabels,
		}),

		timersStopped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "timers_stopped_total",
			Help:        "Total number of loop timers stopped before firing",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Install makes c the observer of the calling goroutine. Timers already
// scheduled on the goroutine's loop are added to timers_pending. Listeners
// subscribed before Install are not counted, so install the collector before
// building streams.
func (c *Collector) Install() {
	c.timersPending.Add(float64(frp.CurrentLoop().Timers()))
	frp.SetObserver(c)
}

func (c *Collector) ListenerAdded() {
	c.listenersActive.Inc()
	c.subscriptions.Inc()
}

func (c *Collector) ListenerRemoved() {
	c.listenersActive.Dec()
}

func (c *Collector) Emitted(delivered int) {
	c.emissions.Inc()
	c.deliveries.Add(float64(delivered))
	c.fanout.Observe(float64(delivered))
}

func (c *Collector) TimerScheduled() {
	c.timersPending.Inc()
}

func (c *Collector) TimerFired() {
	c.timersPending.Dec()
	c.timersFired.Inc()
}

func (c *Collector) TimerStopped() {
	c.timersPending.Dec()
	c.timersStopped.Inc()
}
