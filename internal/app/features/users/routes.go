// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account routes (typically at "/users"). Every caller
// may read its profile; only admins may list accounts.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.Middleware)
	r.Get("/profile", h.ServeProfile)
	r.With(auth.RequireRole(h.Log, "admin")).Get("/", h.ServeList)
	return r
}
