package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	h := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "derent_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "derent_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	if err := reg.Register(h.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(h.duration); err != nil {
		return nil, err
	}
	return h, nil
}

// GinMiddleware records per-request metrics. Unmatched routes are
// collapsed into a single label to keep cardinality bounded.
func GinMiddleware(h *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		h.requests.WithLabelValues(route, method, status).Inc()
		h.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
