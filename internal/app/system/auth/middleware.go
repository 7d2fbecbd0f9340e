package auth

import (
	"net/http"
	"strings"

	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Authenticator verifies bearer tokens on incoming requests.
//
// Only the Authorization header is consulted; the session cookie written at
// login is not a credential for guarded routes.
type Authenticator struct {
	tokens *Tokens
	log    *zap.Logger
}

// NewAuthenticator returns an Authenticator.
func NewAuthenticator(tokens *Tokens, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, log: logger}
}

// Middleware rejects requests without a valid token with a 401 JSON error
// and injects the caller into the context otherwise.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := a.token(r)
		if raw == "" {
			respond.Error(w, r, a.log, apperr.Unauthorized("Unauthorized"))
			return
		}

		claims, err := a.tokens.Parse(raw)
		if err != nil {
			a.log.Debug("rejecting access token", zap.Error(err))
			respond.Error(w, r, a.log, apperr.Unauthorized("Unauthorized").Wrap(err))
			return
		}

		next.ServeHTTP(w, WithPrincipal(r, claims.Principal()))
	})
}

func (a *Authenticator) token(r *http.Request) string {
	scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// RequireRole lets the request through only when the principal set by
// Middleware carries one of the allowed roles.
func RequireRole(logger *zap.Logger, allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentUser(r)
			if !ok {
				respond.Error(w, r, logger, apperr.Unauthorized("Unauthorized"))
				return
			}
			for _, role := range p.Roles {
				if _, has := set[strings.ToLower(role)]; has {
					next.ServeHTTP(w, r)
					return
				}
			}
			respond.Error(w, r, logger, apperr.Forbidden("Forbidden resource"))
		})
	}
}
