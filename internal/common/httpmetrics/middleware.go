package httpmetrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
)

type Collector struct {
	service   string
	normalize Normalizer
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// New builds a collector for service. A nil normalize falls back to
// NormalizePath.
func New(service string, normalize Normalizer) *Collector {
	if normalize == nil {
		normalize = NormalizePath
	}
	return &Collector{
		service:   service,
		normalize: normalize,
	}
}

func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method
		path := c.normalize(r.URL.Path)

		metrics.HTTPRequestsTotal.WithLabelValues(c.service, method, path).Inc()
		metrics.HTTPRequestsInFlight.WithLabelValues(c.service).Inc()
		defer metrics.HTTPRequestsInFlight.WithLabelValues(c.service).Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(withRoute(r.Context(), path)))

		statusClass := fmt.Sprintf("%dxx", rec.status/100)
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(c.service, method, path, statusClass).
			Observe(time.Since(start).Seconds())
	})
}
