package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Logger logs each request's method, path, status, response size and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Strip CR/LF from user-supplied values to prevent log injection.
		sanitize := strings.NewReplacer("\n", "", "\r", "").Replace
		log.Printf(
			"%s %s %d %dB %s",
			sanitize(r.Method),
			sanitize(r.URL.Path),
			wrapped.statusCode,
			wrapped.bytes,
			time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code and
// the number of body bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}
