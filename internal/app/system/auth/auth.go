// Package auth authenticates API callers.
//
// Callers present a signed access token, either in an
// "Authorization: Bearer" header or in the signed session cookie written at
// login. Middleware verifies the token and injects the caller as a
// *Principal into the request context.
package auth

import (
	"context"
	"net/http"
)

// Principal is the authenticated caller as carried in the access token.
type Principal struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the principal carries role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal and a "found?" flag.
func CurrentUser(r *http.Request) (*Principal, bool) {
	return FromContext(r.Context())
}

// FromContext returns the principal stored in ctx, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(currentUserKey).(*Principal)
	return p, ok && p != nil
}

// WithPrincipal returns a copy of r carrying p. Handler tests use it to
// skip token verification.
func WithPrincipal(r *http.Request, p *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, p))
}
