package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/strandhttp/strand"
)

// metricsStartKey is the Request.Values key the incoming half stores
// the dispatch start time under.
const metricsStartKey = "middleware.metrics_start"

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "strand").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
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
		Namespace: "strand",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics returns middleware recording a request counter labelled by
// method and status and a duration histogram labelled by method.
// Metrics are registered once, when Metrics is called.
func Metrics(opts ...MetricsOption) (strand.IncomingMiddleware, strand.OutgoingMiddleware) {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	requestsTotal := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "requests_total",
		Help:        "Total number of dispatched requests.",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "status"})

	requestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "request_duration_seconds",
		Help:        "Request dispatch duration in seconds.",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"method"})

	incoming := func(_ context.Context, req *strand.Request) (*strand.Request, *strand.Response, error) {
		req.Values[metricsStartKey] = time.Now()
		return req, nil, nil
	}

	outgoing := func(_ context.Context, req *strand.Request, resp *strand.Response) (*strand.Response, error) {
		requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.Status)).Inc()
		if start, ok := req.Values[metricsStartKey].(time.Time); ok {
			requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
		}
		return resp, nil
	}

	return incoming, outgoing
}
