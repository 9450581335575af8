// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers pull a request-scoped logger out of the context so every line is
// correlated with its request:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("payment committed", "email", email, "price", price)
//	// → time=... level=INFO msg="payment committed" request_id=a1b2c3d4 email=...
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bistrobuzz/bistro/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stdout, config.AppEnv())
	slog.SetDefault(L)
}

// New builds the base logger: JSON for production, text otherwise.
func New(w io.Writer, env string) *slog.Logger {
	return slog.New(baseHandler(w, env))
}

func baseHandler(w io.Writer, env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Attach fans every record out to the stdout handler and extra.
func Attach(extra ...slog.Handler) {
	hs := append([]slog.Handler{baseHandler(os.Stdout, config.AppEnv())}, extra...)
	L = slog.New(NewMultiHandler(hs...))
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request logger stored by the Logger middleware, or the
// base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
