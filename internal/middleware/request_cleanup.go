package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes covers the largest payload the API takes, a workout log with its sets.
const DefaultMaxBodyBytes int64 = 1 << 20

// RequestBody caps the request body at maxBytes and, once the handler is done, drains and
// closes whatever the handler left unread so the connection can be reused.
func RequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)

			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
