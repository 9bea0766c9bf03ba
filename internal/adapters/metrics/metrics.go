package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
)

const namespace = "kanso"

var _ services.Recorder = (*Metrics)(nil)

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	rollovers *prometheus.CounterVec
	progress  *prometheus.CounterVec
	corrupt   prometheus.Counter
	requests  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rollovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollovers_total",
			Help:      "Period rollovers applied to habits.",
		}, []string{"frequency", "streak"}),
		progress: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "progress_recorded_total",
			Help:      "Progress actions persisted.",
		}, []string{"kind", "completed"}),
		corrupt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corrupt_habits_total",
			Help:      "Stored habits that failed to decode.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.rollovers, m.progress, m.corrupt, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RolloverApplied(freq domain.Frequency, streakKept bool) {
	outcome := "reset"
	if streakKept {
		outcome = "kept"
	}
	m.rollovers.WithLabelValues(freq.String(), outcome).Inc()
}

func (m *Metrics) ProgressRecorded(kind domain.Kind, completed bool) {
	m.progress.WithLabelValues(kind.String(), strconv.FormatBool(completed)).Inc()
}

func (m *Metrics) CorruptHabit() {
	m.corrupt.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware observes latency per route template, not per raw path, to keep
// label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
