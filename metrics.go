package ledgersdk

import "github.com/prometheus/client_golang/prometheus"

// clientMetrics mirrors the counters/histograms a production
// ingestion service in this codebase would register for a network
// client: requests issued, node failures, and latency. No request path
// in this package updates these collectors, so they stay at zero.
type clientMetrics struct {
	requestsTotal     *prometheus.CounterVec
	nodeFailuresTotal *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	registry          *prometheus.Registry
}

func newClientMetrics() *clientMetrics {
	registry := prometheus.NewRegistry()
	m := &clientMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgersdk_client_requests_total",
			Help: "Total number of requests issued by the client, by kind and outcome.",
		}, []string{"kind", "status"}),
		nodeFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledgersdk_client_node_failures_total",
			Help: "Total number of transport-level failures per node.",
		}, []string{"node"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledgersdk_client_request_duration_seconds",
			Help:    "Duration of a completed client request, including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		registry: registry,
	}
	registry.MustRegister(m.requestsTotal, m.nodeFailuresTotal, m.requestDuration)
	return m
}

// Registry exposes the underlying prometheus registry so callers can
// serve it on their own /metrics endpoint.
func (m *clientMetrics) Registry() *prometheus.Registry { return m.registry }
