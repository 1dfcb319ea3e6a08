package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ScoringTotal    *prometheus.CounterVec
	StartedTotal    prometheus.Counter
	RejectedTotal   prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		ScoringTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "certification_scoring_total",
				Help: "Certifications scored, by reproducibility tier",
			},
			[]string{"tier"},
		),
		StartedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "certification_started_total",
			Help: "Certification courses started",
		}),
		RejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "certification_start_rejected_total",
			Help: "Certification starts refused for eligibility",
		}),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.ScoringTotal,
		m.StartedTotal,
		m.RejectedTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveScoring(tier string) {
	if m == nil {
		return
	}
	m.ScoringTotal.WithLabelValues(tier).Inc()
}

func (m *Metrics) CertificationStarted() {
	if m == nil {
		return
	}
	m.StartedTotal.Inc()
}

func (m *Metrics) CertificationRejected() {
	if m == nil {
		return
	}
	m.RejectedTotal.Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
