// internal/app/features/campaigninfluencers/routes.go
package campaigninfluencers

import (
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the link routes (typically at "/campaign-influencers").
// The two list-by routes are registered before "/{id}" so chi never reads
// "campaign" as an id.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.Middleware)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/campaign/{campaignId}", h.ServeByCampaign)
	r.Get("/influencer/{influencerId}", h.ServeByInfluencer)
	r.Get("/{id}", h.ServeOne)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
