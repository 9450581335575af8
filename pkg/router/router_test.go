package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Chain", name)
			next.ServeHTTP(w, r)
		})
	}
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroup_MiddlewareOrder(t *testing.T) {
	r := New()
	api := r.Group("/api", tag("group"))
	api.Get("/menu", "menu.index", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Chain"))
}

func TestURL(t *testing.T) {
	r := New()
	r.Delete("/menu/{id}", "menu.destroy", ok)

	url, err := r.URL("menu.destroy", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/menu/abc", url)

	_, err = r.URL("menu.destroy", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutes_Sorted(t *testing.T) {
	r := New()
	r.Post("/menu", "menu.store", ok)
	r.Get("/menu", "menu.index", ok)
	r.Patch("/users/admin/{id}", "", ok)

	assert.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Path: "/menu", Name: "menu.index"},
		{Method: http.MethodPost, Path: "/menu", Name: "menu.store"},
		{Method: http.MethodPatch, Path: "/users/admin/{id}"},
	}, r.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath("", "/"))
	assert.Equal(t, "/a/b", joinPath("/a/", "/b"))
}
