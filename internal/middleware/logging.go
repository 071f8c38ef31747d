package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every request on the way in, and its status and duration on the way out.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := log.WithFields(log.Fields{
				"request_id": RequestIDFromContext(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			entry.Tracef("--> request [UA: %s]", r.Header.Get("User-Agent"))

			begin := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)

			entry.WithFields(log.Fields{
				"status":   resp.statusCode,
				"duration": time.Since(begin).String(),
			}).Trace("<-- response")
		})
	}
}
