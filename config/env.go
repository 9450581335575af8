package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort      = "5000"
	defaultAppEnv       = "local"
	defaultDBURI        = "mongodb://localhost:27017"
	defaultDBName       = "bistroBuzz"
	defaultTokenSecret  = "change-me-in-production"
	defaultRedisAddr    = "localhost:6379"
	defaultMenuCacheTTL = 5 * time.Minute
	defaultMailHost     = "smtp.gmail.com"
	defaultMailPort     = "587"
	defaultRateLimit    = 200
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Process environment variables
// win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load("config/app.json", ".env")
	})
	return loadErr
}

// LoadFrom replaces the current values with defaults merged with the given
// files. Missing files are skipped. A later Load is a no-op.
func LoadFrom(configPath, envPath string) error {
	loadOnce.Do(func() {})
	return load(configPath, envPath)
}

func load(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":             defaultAppEnv,
		"APP_PORT":            defaultAppPort,
		"DB_URI":              defaultDBURI,
		"DB_NAME":             defaultDBName,
		"MONGO_TRANSACTIONS":  "false",
		"ACCESS_TOKEN_SECRET": defaultTokenSecret,
		"REDIS_ADDR":          defaultRedisAddr,
		"REDIS_PASSWORD":      "",
		"MENU_CACHE_TTL":      defaultMenuCacheTTL.String(),
		"STRIPE_SECRET_KEY":   "",
		"PAYMENT_CURRENCY":    "usd",
		"MAIL_DRIVER":         "smtp",
		"MAIL_HOST":           defaultMailHost,
		"MAIL_PORT":           defaultMailPort,
		"EMAIL_USERNAME":      "",
		"EMAIL_PASSWORD":      "",
		"SENDGRID_API_KEY":    "",
		"CONTACT_TO":          "",
		"LOG_TO_MONGO":        "false",
		"RATE_LIMIT":          strconv.Itoa(defaultRateLimit),
		"MAX_BODY_BYTES":      "4194304",
		"CORS_ORIGINS":        "*",
	}
}

func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }
func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

func DatabaseURI() string  { _ = Load(); return get("DB_URI", defaultDBURI) }
func DatabaseName() string { _ = Load(); return get("DB_NAME", defaultDBName) }

// MongoTransactions reports whether the payment commit runs inside a
// multi-document transaction. Requires a replica set.
func MongoTransactions() bool {
	_ = Load()
	return getBool("MONGO_TRANSACTIONS", false)
}

func TokenSecret() string {
	_ = Load()
	return get("ACCESS_TOKEN_SECRET", defaultTokenSecret)
}

// CORSOrigins lists the browser origins allowed to call the API, from the
// comma-separated CORS_ORIGINS. "*" allows any.
func CORSOrigins() []string {
	_ = Load()
	var out []string
	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

func MenuCacheTTL() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("MENU_CACHE_TTL", ""))
	if err != nil || d <= 0 {
		return defaultMenuCacheTTL
	}
	return d
}

// ── Gateways ─────────────────────────────────────────────────────────────────

func StripeSecretKey() string { _ = Load(); return get("STRIPE_SECRET_KEY", "") }
func PaymentCurrency() string { _ = Load(); return strings.ToLower(get("PAYMENT_CURRENCY", "usd")) }

func MailDriver() string {
	_ = Load()
	driver := strings.ToLower(get("MAIL_DRIVER", "smtp"))
	switch driver {
	case "smtp", "sendgrid":
		return driver
	default:
		return "smtp"
	}
}

func MailHost() string       { _ = Load(); return get("MAIL_HOST", defaultMailHost) }
func MailPort() string       { _ = Load(); return get("MAIL_PORT", defaultMailPort) }
func MailUsername() string   { _ = Load(); return get("EMAIL_USERNAME", "") }
func MailPassword() string   { _ = Load(); return get("EMAIL_PASSWORD", "") }
func SendGridAPIKey() string { _ = Load(); return get("SENDGRID_API_KEY", "") }

// ContactRecipient is the inbox that receives contact form messages.
// Falls back to the SMTP username.
func ContactRecipient() string {
	_ = Load()
	return get("CONTACT_TO", MailUsername())
}

// ── HTTP ─────────────────────────────────────────────────────────────────────

func LogToMongo() bool { _ = Load(); return getBool("LOG_TO_MONGO", false) }

func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", ""))
	if err != nil || n <= 0 {
		return defaultRateLimit
	}
	return n
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool:
			out[k] = strconv.FormatBool(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return statErr
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
