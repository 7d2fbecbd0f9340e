// internal/app/features/influencers/routes.go
package influencers

import (
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Influencer routes under the base path
// (typically "/influencers" from bootstrap). Every route needs a token.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.Middleware)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeOne)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
