// Package bind decodes and validates an HTTP request body into a struct.
//
// Bodies are capped at MAX_BODY_BYTES unless the route carries its own cap:
//
//	r.Post("/contact", "contact.send", h, bind.Limit(16<<10))
package bind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bistrobuzz/bistro/config"
	"github.com/bistrobuzz/bistro/pkg/validate"
)

var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrTrailingData = errors.New("request body must hold a single JSON value")
)

type limitKey struct{}

// Limit sets the body cap for the routes it wraps.
func Limit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), limitKey{}, n)))
		})
	}
}

// MaxBytes returns the cap that applies to r.
func MaxBytes(r *http.Request) int64 {
	if n, ok := r.Context().Value(limitKey{}).(int64); ok && n > 0 {
		return n
	}
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// JSON decodes r.Body into dest and validates it.
// Returns (errs, nil) on validation failures and (nil, err) when the body is
// empty, malformed or too large.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBytes(r))
	dec := json.NewDecoder(r.Body)

	if err = dec.Decode(dest); err != nil {
		return nil, decodeError(err)
	}
	if err = dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, decodeError(err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}
}
