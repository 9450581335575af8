package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bistrobuzz/bistro/pkg/reqid"
)

// CORSOptions configures the CORS middleware.
type CORSOptions struct {
	AllowedOrigins []string // ["*"] allows any origin
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int // seconds
}

// DefaultCORSOptions allows any origin. The storefront SPA is served from a
// different host than the API and sends the bearer token itself, so no
// cookies are involved.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", reqid.Header},
		ExposedHeaders: []string{reqid.Header, "Retry-After"},
		MaxAge:         300,
	}
}

// CORSFor returns the default options restricted to origins. An empty list
// keeps the wildcard.
func CORSFor(origins []string) CORSOptions {
	opts := DefaultCORSOptions()
	if len(origins) > 0 {
		opts.AllowedOrigins = origins
	}
	return opts
}

// CORS answers preflights itself. A preflight from an origin outside the
// list gets 403; simple requests from it pass through without CORS headers
// and the browser drops the response.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	exposed := strings.Join(opts.ExposedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := matchOrigin(opts.AllowedOrigins, origin)
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if allowed != "*" {
				w.Header().Add("Vary", "Origin")
			}
			if allowed != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowed)
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
				if preflight {
					h.Set("Access-Control-Allow-Methods", methods)
					h.Set("Access-Control-Allow-Headers", headers)
					if opts.MaxAge > 0 {
						h.Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
					}
				}
			}

			if preflight {
				if allowed == "" && origin != "" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchOrigin(allowed []string, origin string) string {
	for _, o := range allowed {
		if o == "*" {
			return o
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}
