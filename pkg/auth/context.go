package auth

import "context"

type claimsKey struct{}

// WithClaims attaches verified claims to ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromCtx returns the claims attached by the authentication gate.
func ClaimsFromCtx(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// EmailFromCtx returns the authenticated email, or "" when unauthenticated.
func EmailFromCtx(ctx context.Context) string {
	if c, ok := ClaimsFromCtx(ctx); ok {
		return c.Email
	}
	return ""
}
