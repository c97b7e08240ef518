package metrics

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ochronus/hello-inertia/core/session"
	"github.com/ochronus/hello-inertia/core/ssr"
)

// Namespace prefixes every metric name.
const Namespace = "auth_example"

// Metrics holds the application's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	ssrState      prometheus.Gauge
	ssrRenders    *prometheus.CounterVec
	sessionEvents *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
}

// New creates a registry with Go and process collectors plus the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		ssrState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ssr_state",
			Help:      "Renderer supervisor state: 0 not started, 1 running, 2 terminated, 3 never started.",
		}),
		ssrRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ssr_renders_total",
			Help:      "Server-side render attempts by result.",
		}, []string{"result"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "session_events_total",
			Help:      "Session lifecycle events.",
		}, []string{"event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by status code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.ssrState, m.ssrRenders, m.sessionEvents, m.httpRequests)
	return m
}

// Registry returns the registry backing the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SSRState records a supervisor state transition. It matches ssr.WithStateHook.
func (m *Metrics) SSRState(s ssr.State) {
	m.ssrState.Set(float64(s))
}

// SSRRender counts one render attempt; result is ssr.RenderOK or ssr.RenderFallback.
func (m *Metrics) SSRRender(result string) {
	m.ssrRenders.WithLabelValues(result).Inc()
}

// SessionEvent implements session.Recorder.
func (m *Metrics) SessionEvent(e session.Event) {
	m.sessionEvents.WithLabelValues(string(e)).Inc()
}

// Middleware counts responses by status code.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusOK
		w = httpsnoop.Wrap(w, httpsnoop.Hooks{
			WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
				return func(c int) {
					code = c
					next(c)
				}
			},
		})
		next.ServeHTTP(w, r)
		m.httpRequests.WithLabelValues(strconv.Itoa(code)).Inc()
	})
}
