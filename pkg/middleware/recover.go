package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/metrics"
	"github.com/bistrobuzz/bistro/pkg/reqid"
	"github.com/bistrobuzz/bistro/pkg/response"
)

// Recovery turns a handler panic into a 500, counts it per route and logs
// the stack. It runs ahead of reqid, so the id is read back from the
// response header the client will see.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			route := metrics.RoutePattern(r)
			metrics.PanicsRecovered.WithLabelValues(r.Method, route).Inc()
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprintf("%v", err),
				"request_id", w.Header().Get(reqid.Header),
				"route", route,
				"stack", string(debug.Stack()),
			)
			response.InternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
