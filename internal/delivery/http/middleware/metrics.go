package middleware

import (
	"net/http"

	"musicroombooking/internal/metrics"
)

// Metrics records the response status code of each request.
func Metrics(collector metrics.Collector, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		collector.RecordHTTPStatus(wrapped.status)
	})
}
