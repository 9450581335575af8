package middleware

import (
	"net/http"
	"time"

	"github.com/bistrobuzz/bistro/pkg/auth"
	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/reqid"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request and injects a request-scoped logger tagged
// with the request ID. Wire reqid.Middleware before it.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		// Gates attach claims to a derived request; the handler chain below
		// reports the caller back through this holder.
		caller := &callerHolder{}
		r = r.WithContext(withCaller(r.Context(), caller))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start).String(),
			"ip", r.RemoteAddr,
		}
		if caller.email != "" {
			attrs = append(attrs, "email", caller.email)
		}
		reqLog.Info("request", attrs...)
	})
}

// Caller records the authenticated email for the request log line. It runs
// after the gates, immediately in front of the handler.
func Caller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := callerFromCtx(r.Context()); h != nil {
			h.email = auth.EmailFromCtx(r.Context())
		}
		next.ServeHTTP(w, r)
	})
}
