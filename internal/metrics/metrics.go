package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the browsing engine and the servers
// wrapped around it. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	// Upstream fetch latencies by operation and result
	FetchLatency *prometheus.HistogramVec

	// Detail responses dropped because a newer selection superseded them
	StaleDetails prometheus.Counter

	// REST requests by route pattern and status code
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// MCP tool invocations by tool and result
	ToolCalls *prometheus.CounterVec

	// Browse sessions currently held by the MCP server
	ActiveSessions prometheus.Gauge
}

// New creates a Metrics instance registered on its own registry, along with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "policyatlas_fetch_duration_seconds",
			Help:    "Duration of case study fetches against the record source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"op", "result"}), // op: "list_summaries", "get_detail"

		StaleDetails: factory.NewCounter(prometheus.CounterOpts{
			Name: "policyatlas_stale_details_discarded_total",
			Help: "Detail responses discarded because a newer selection or clear superseded them",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "policyatlas_http_requests_total",
			Help: "REST requests by route and status code",
		}, []string{"route", "code"}),

		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "policyatlas_http_request_duration_seconds",
			Help:    "REST request duration by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "policyatlas_mcp_tool_calls_total",
			Help: "MCP tool calls by tool name and result",
		}, []string{"tool", "result"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "policyatlas_mcp_active_sessions",
			Help: "Browse sessions currently held by the MCP server",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch records the duration of a record source call.
func (m *Metrics) ObserveFetch(op string, d time.Duration, err error) {
	if m != nil {
		m.FetchLatency.WithLabelValues(op, result(err)).Observe(d.Seconds())
	}
}

// StaleDetailDiscarded counts a superseded detail response.
func (m *Metrics) StaleDetailDiscarded() {
	if m != nil {
		m.StaleDetails.Inc()
	}
}

// ObserveHTTP records one REST request.
func (m *Metrics) ObserveHTTP(route, code string, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, code).Inc()
		m.HTTPLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementToolCall records one MCP tool invocation.
func (m *Metrics) IncrementToolCall(tool string, err error) {
	if m != nil {
		m.ToolCalls.WithLabelValues(tool, result(err)).Inc()
	}
}

// SetActiveSessions reports the current number of browse sessions.
func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
