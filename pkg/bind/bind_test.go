package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrobuzz/bistro/pkg/bind"
)

type order struct {
	Email string  `json:"email" validate:"required,email"`
	Price float64 `json:"price" validate:"gt=0"`
}

func decode(t *testing.T, body string, mws ...func(http.Handler) http.Handler) (map[string]string, error) {
	t.Helper()

	var (
		errs map[string]string
		err  error
	)
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in order
		errs, err = bind.JSON(w, r, &in)
	})
	for _, mw := range mws {
		h = mw(h)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return errs, err
}

func TestJSON_Valid(t *testing.T) {
	errs, err := decode(t, `{"email":"ann@example.com","price":4.5}`+"\n")
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestJSON_ValidationErrors(t *testing.T) {
	errs, err := decode(t, `{"email":"nope","price":0}`)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "price")
}

func TestJSON_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", bind.ErrEmptyBody.Error()},
		{"malformed", `{"email":`, "invalid JSON"},
		{"two values", `{"price":1}{"price":2}`, bind.ErrTrailingData.Error()},
		{"trailing garbage", `{"price":1} x`, "invalid JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decode(t, tc.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestJSON_RouteLimit(t *testing.T) {
	body := `{"email":"ann@example.com","price":4.5}`

	_, err := decode(t, body, bind.Limit(16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 16 bytes")

	_, err = decode(t, body, bind.Limit(1<<10))
	assert.NoError(t, err)
}

func TestMaxBytes_Default(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Equal(t, int64(4<<20), bind.MaxBytes(r))
}
