package campaigninfluencers

import (
	"context"
	"net/http"

	campaigninfluencerstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigninfluencers"
	"github.com/dalemusser/affiliatehub/internal/app/system/inputval"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /campaign-influencers.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.sanitize()
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := campaigninfluencerstore.New(h.DB).Create(ctx, in.model())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("campaign influencer created",
		zap.String("link_id", link.ID.Hex()),
		zap.String("campaign_id", link.CampaignID.Hex()),
		zap.String("influencer_id", link.InfluencerID.Hex()))
	respond.JSON(w, http.StatusCreated, link)
}

// ServeList handles GET /campaign-influencers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	links, err := campaigninfluencerstore.New(h.DB).List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, links)
}

// ServeByCampaign handles GET /campaign-influencers/campaign/{campaignId}.
func (h *Handler) ServeByCampaign(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	links, err := campaigninfluencerstore.New(h.DB).ListByCampaign(ctx, chi.URLParam(r, "campaignId"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, links)
}

// ServeByInfluencer handles GET /campaign-influencers/influencer/{influencerId}.
func (h *Handler) ServeByInfluencer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	links, err := campaigninfluencerstore.New(h.DB).ListByInfluencer(ctx, chi.URLParam(r, "influencerId"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, links)
}

// ServeOne handles GET /campaign-influencers/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := campaigninfluencerstore.New(h.DB).GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, link)
}

// HandleUpdate handles PATCH /campaign-influencers/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.sanitize()
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := campaigninfluencerstore.New(h.DB).Update(ctx, chi.URLParam(r, "id"), in.patch())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, link)
}

// HandleDelete handles DELETE /campaign-influencers/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link, err := campaigninfluencerstore.New(h.DB).Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("campaign influencer deleted", zap.String("link_id", link.ID.Hex()))
	respond.JSON(w, http.StatusOK, link)
}
