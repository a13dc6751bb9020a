package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/tasteofthebes/internal/adapter/metrics"
	"github.com/ericfisherdev/tasteofthebes/internal/application"
)

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and
// duration, and records the request in m when it is non-nil. The route label
// is the matched ServeMux pattern so ids never become label values.
func loggingMiddleware(logger *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", elapsed.Round(time.Microsecond),
		)

		if m != nil {
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		}
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, "Internal server error", "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireAPIKey resolves the ?key= query parameter to an identity and stores
// it on the request context.
func requireAPIKey(keys *application.APIKeyService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := keys.Authenticate(r.Context(), r.URL.Query().Get("key"))
			if err != nil {
				if statusForError(err) == http.StatusInternalServerError {
					logger.Error("api key lookup failed", "error", err)
					writeError(w, http.StatusInternalServerError, "Authentication failed", "")
					return
				}
				logger.Warn("rejected api key", "remote_addr", r.RemoteAddr, "reason", application.Detail(err))
				writeError(w, http.StatusUnauthorized, application.Detail(err), "")
				return
			}

			next.ServeHTTP(w, r.WithContext(application.WithIdentity(r.Context(), id)))
		})
	}
}

// requireApprovedAdmin lets only approved admin identities through.
func requireApprovedAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := application.AuthorizeAdmin(r.Context()); err != nil {
			message := "Access denied"
			if statusForError(err) == http.StatusUnauthorized {
				message = "Authentication required"
			}
			writeError(w, statusForError(err), message, application.Detail(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}
