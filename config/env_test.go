package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")))

	assert.Equal(t, "5000", AppPort())
	assert.Equal(t, "bistroBuzz", DatabaseName())
	assert.Equal(t, "smtp", MailDriver())
	assert.Equal(t, 200, RateLimit())
	assert.Equal(t, 5*time.Minute, MenuCacheTTL())
	assert.False(t, MongoTransactions())
}

func TestLoadFrom_DotEnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"7000","db_name":"fromjson","mongo_transactions":true}`)
	envPath := writeFile(t, dir, ".env", "# comment\nAPP_PORT=8000\nACCESS_TOKEN_SECRET=\"s3cret\"\nMAIL_DRIVER=sendgrid\n")

	require.NoError(t, LoadFrom(jsonPath, envPath))

	assert.Equal(t, "8000", AppPort())
	assert.Equal(t, "fromjson", DatabaseName())
	assert.Equal(t, "s3cret", TokenSecret())
	assert.Equal(t, "sendgrid", MailDriver())
	assert.True(t, MongoTransactions())
}

func TestLoadFrom_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DB_NAME=fromfile\n")
	t.Setenv("DB_NAME", "fromenv")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))

	assert.Equal(t, "fromenv", DatabaseName())
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "RATE_LIMIT=abc\nMENU_CACHE_TTL=soon\nMAIL_DRIVER=pigeon\n")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))

	assert.Equal(t, 200, RateLimit())
	assert.Equal(t, 5*time.Minute, MenuCacheTTL())
	assert.Equal(t, "smtp", MailDriver())
}

func TestLoadFrom_BadJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)

	err := LoadFrom(jsonPath, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestContactRecipientFallsBackToUsername(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "EMAIL_USERNAME=owner@bistro.test\n")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))

	assert.Equal(t, "owner@bistro.test", ContactRecipient())
}

func TestCORSOrigins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")))
	assert.Equal(t, []string{"*"}, CORSOrigins())

	t.Setenv("CORS_ORIGINS", " https://bistro.example , https://admin.bistro.example,")
	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")))
	assert.Equal(t, []string{"https://bistro.example", "https://admin.bistro.example"}, CORSOrigins())
}
