package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the custom Prometheus metrics on their own registry.
type Manager struct {
	Registry *prometheus.Registry

	ItemsAddedTotal   prometheus.Counter
	ItemsUpdatedTotal prometheus.Counter
	ItemsRemovedTotal prometheus.Counter
	MergeRetriesTotal prometheus.Counter
	RequestLatency    *prometheus.HistogramVec
}

func New(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	itemsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Total number of add-to-cart merges.",
	})
	itemsUpdated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_updated_total",
		Help:      "Total number of quantity overwrites.",
	})
	itemsRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_removed_total",
		Help:      "Total number of item removals.",
	})
	mergeRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_merge_retries_total",
		Help:      "Total number of retried storage conflicts.",
	})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(
		itemsAdded,
		itemsUpdated,
		itemsRemoved,
		mergeRetries,
		requestLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		ItemsAddedTotal:   itemsAdded,
		ItemsUpdatedTotal: itemsUpdated,
		ItemsRemovedTotal: itemsRemoved,
		MergeRetriesTotal: mergeRetries,
		RequestLatency:    requestLatency,
	}
}

// Handler exposes the registry for a /metrics endpoint.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
