package middleware

import (
	"net/http"
	"time"

	"github.com/javiortega/techdepot-backend/pkg/metrics"
)

// Metrics records per-route request counts and latencies. Routes are
// labelled by chi pattern, never by raw path, to keep cardinality bounded.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			httpMetrics.ObserveRequest(routePattern(r), r.Method, rec.status, time.Since(start))
		})
	}
}
