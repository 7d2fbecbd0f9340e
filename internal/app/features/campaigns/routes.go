// internal/app/features/campaigns/routes.go
package campaigns

import (
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Campaign routes under the base path
// (typically "/campaigns" from bootstrap). Every route needs a token.
//
// Reads return the enriched read-model (campaign + influencers); writes
// return the bare campaign document.
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
