package rbac

import (
	"context"
	"net/http"

	"github.com/bistrobuzz/bistro/pkg/auth"
)

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// RoleLookup resolves the role of a user by email. A missing user must be
// reported as Guest with a nil error.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (Role, error)
}

type authenticated struct {
	tokens TokenVerifier
}

// Authenticated requires a valid bearer token and attaches its claims to the
// request context. It never touches storage.
func Authenticated(tokens TokenVerifier) Gate {
	return authenticated{tokens: tokens}
}

func (authenticated) Name() string { return "authenticated" }

func (g authenticated) Check(r *http.Request) (*http.Request, Decision) {
	raw := auth.BearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		return r, Denied(http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return r, Denied(http.StatusUnauthorized, err.Error())
	}

	return r.WithContext(auth.WithClaims(r.Context(), claims)), Allowed()
}

type adminOnly struct {
	roles RoleLookup
}

// AdminOnly requires the authenticated user to hold the Admin role.
func AdminOnly(roles RoleLookup) Gate {
	return adminOnly{roles: roles}
}

func (adminOnly) Name() string { return "admin" }

func (g adminOnly) Check(r *http.Request) (*http.Request, Decision) {
	email := auth.EmailFromCtx(r.Context())
	if email == "" {
		return r, Denied(http.StatusUnauthorized, "no authenticated user")
	}

	role, err := g.roles.RoleOf(r.Context(), email)
	if err != nil {
		return r, Denied(http.StatusInternalServerError, err.Error())
	}

	switch role {
	case Admin:
		return r, Allowed()
	case Guest:
		return r, Denied(http.StatusForbidden, "admin role required")
	default:
		return r, Denied(http.StatusForbidden, "unknown role")
	}
}

type owner struct {
	param string
}

// Owner scopes a list endpoint to the caller's own records. The target email
// is read from the query parameter param: absent yields an empty list, a
// different email is forbidden.
func Owner(param string) Gate {
	return owner{param: param}
}

func (owner) Name() string { return "owner" }

func (g owner) Check(r *http.Request) (*http.Request, Decision) {
	email := auth.EmailFromCtx(r.Context())
	if email == "" {
		return r, Denied(http.StatusUnauthorized, "no authenticated user")
	}

	target := r.URL.Query().Get(g.param)
	if target == "" {
		return r, EmptyResult()
	}
	if target != email {
		return r, Denied(http.StatusForbidden, "email does not match token")
	}
	return r, Allowed()
}
