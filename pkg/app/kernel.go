package app

import (
	"net/http"

	"github.com/bistrobuzz/bistro/pkg/metrics"
	"github.com/bistrobuzz/bistro/pkg/middleware"
	"github.com/bistrobuzz/bistro/pkg/reqid"
	"github.com/bistrobuzz/bistro/pkg/response"
	"github.com/bistrobuzz/bistro/pkg/router"
)

// buildRouter installs the global middleware stack and the endpoints that
// sit outside the API table.
func buildRouter(a *Application, s Settings) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. metrics   total latency including everything below
	//  2. recovery  a panic becomes a 500 envelope
	//  3. reqid     before anything logs
	//  4. logger    one line per request, tagged with the request ID
	//  5. cors      preflight answered before limiting
	//  6. rate      per-IP budget
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(s.CORS))
	if a.Limiter != nil {
		r.Use(middleware.RateLimit(a.Limiter))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	return r
}
