package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/menu/{category}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/menu/{category}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu/dessert", nil))

	after := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/menu/{category}", "418"))
	assert.Equal(t, before+1, after)
}

func TestHandler_ServesRegistry(t *testing.T) {
	GateDenials.WithLabelValues("admin", "403").Inc()

	rec := httptest.NewRecorder()
	Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bistro_access_denials_total")
}
