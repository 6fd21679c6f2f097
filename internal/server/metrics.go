package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup results recorded by the lookups counter.
const (
	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

// Metrics holds the Prometheus metrics of the demo server.
type Metrics struct {
	Lookups         *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the metrics and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countryflags_lookups_total",
			Help: "Total number of flag lookups by result",
		}, []string{"result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countryflags_request_duration_seconds",
			Help:    "Duration of the HTTP requests by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		gatherer: reg,
	}
}

// ObserveLookup counts a single flag lookup.
func (m *Metrics) ObserveLookup(found bool, err error) {
	switch {
	case err != nil:
		m.Lookups.WithLabelValues(resultError).Inc()
	case found:
		m.Lookups.WithLabelValues(resultFound).Inc()
	default:
		m.Lookups.WithLabelValues(resultNotFound).Inc()
	}
}

// Handler exposes the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
