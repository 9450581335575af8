package reqid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	h := Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = FromCtx(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(Header))
}

func TestMiddleware_ReusesUpstreamID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "upstream-123")

	seen, rec := serve(t, req)

	assert.Equal(t, "upstream-123", seen)
	assert.Equal(t, "upstream-123", rec.Header().Get(Header))
}

func TestMiddleware_RejectsOversizedUpstreamID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, strings.Repeat("x", 500))

	seen, _ := serve(t, req)

	assert.Len(t, seen, 36)
}
