// Package rbac gates requests before their handler runs.
//
// A route declares an ordered list of gates; Guard runs them in order and
// stops at the first one that does not allow the request:
//
//	r.Get("/carts", "carts.index", h.Index,
//	    rbac.Guard(rbac.Authenticated(tokens), rbac.Owner("email")))
package rbac

import (
	"net/http"
	"strconv"

	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/metrics"
	"github.com/bistrobuzz/bistro/pkg/response"
)

// Outcome is the verdict of a single gate.
type Outcome uint8

const (
	// Allow passes the request to the next gate or the handler.
	Allow Outcome = iota
	// Deny halts with an error response.
	Deny
	// Empty halts with a successful empty list.
	Empty
)

// Decision is what a gate returns.
type Decision struct {
	Outcome Outcome
	Status  int
	Reason  string
}

func Allowed() Decision { return Decision{Outcome: Allow} }

func Denied(status int, reason string) Decision {
	return Decision{Outcome: Deny, Status: status, Reason: reason}
}

func EmptyResult() Decision { return Decision{Outcome: Empty} }

// Gate checks one property of a request. It may return a request carrying a
// derived context (the authentication gate attaches claims this way).
type Gate interface {
	Name() string
	Check(r *http.Request) (*http.Request, Decision)
}

// Guard composes gates into a middleware. Gates run strictly in the order
// given and the first non-Allow decision ends the request.
func Guard(gates ...Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, g := range gates {
				var d Decision
				r, d = g.Check(r)

				switch d.Outcome {
				case Allow:
					continue
				case Empty:
					response.Empty(w)
					return
				case Deny:
					deny(w, r, g.Name(), d)
					return
				default:
					deny(w, r, g.Name(), Denied(http.StatusForbidden, "unknown gate outcome"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, gate string, d Decision) {
	status := d.Status
	if status == 0 {
		status = http.StatusForbidden
	}
	metrics.GateDenials.WithLabelValues(gate, strconv.Itoa(status)).Inc()
	logger.WithCtx(r.Context()).Info("request denied",
		"gate", gate,
		"status", status,
		"reason", d.Reason,
		"path", r.URL.Path,
	)

	switch status {
	case http.StatusUnauthorized:
		response.Unauthorized(w)
	case http.StatusForbidden:
		response.Forbidden(w)
	default:
		response.Error(w, status, http.StatusText(status))
	}
}
