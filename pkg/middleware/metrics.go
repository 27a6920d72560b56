package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/echopie/alarmone-insights-api/pkg/metrics"
)

// MetricsMiddleware instrumenta cada requisição HTTP com contadores Prometheus
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			lrw := newLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)

			m.RecordHTTPRequest(
				r.Method,
				r.URL.Path,
				strconv.Itoa(lrw.statusCode),
				time.Since(startTime),
			)
		})
	}
}
