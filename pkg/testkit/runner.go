package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TokenIssuer signs bearer tokens for the "as" field.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// Runner fires scenarios at Handler.
type Runner struct {
	Handler http.Handler
	Tokens  TokenIssuer
}

// Run executes every scenario in the file at path as a subtest.
func (r Runner) Run(t *testing.T, path string) {
	t.Helper()

	scenarios, err := LoadScenarios(path)
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			r.Check(t, s)
		})
	}
}

// RunDir runs every *.json file in dir.
func (r Runner) RunDir(t *testing.T, dir string) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "testkit: no scenario files found in %q", dir)

	for _, path := range paths {
		r.Run(t, path)
	}
}

// Check fires s and asserts the status code and response subset.
func (r Runner) Check(t *testing.T, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	rec := r.Do(t, s)
	AssertStatusCode(t, s, rec.Code)

	expected, err := s.Expected()
	require.NoError(t, err, "[%s] read expected response", s.Name)
	AssertJSONSubset(t, s, expected, rec.Body.Bytes())
	return rec
}

// Do builds and serves the request without asserting anything.
func (r Runner) Do(t *testing.T, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	body, err := s.Body()
	require.NoError(t, err, "[%s] read request body", s.Name)

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if s.As != "" {
		require.NotNil(t, r.Tokens, "[%s] scenario signs requests but Runner has no Tokens", s.Name)
		token, err := r.Tokens.Issue(s.As)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.Handler.ServeHTTP(rec, req)
	return rec
}
