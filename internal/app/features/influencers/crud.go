package influencers

import (
	"context"
	"net/http"

	influencerstore "github.com/dalemusser/affiliatehub/internal/app/store/influencers"
	"github.com/dalemusser/affiliatehub/internal/app/system/inputval"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /influencers.
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

	inf, err := influencerstore.New(h.DB).Create(ctx, in.model())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("influencer created", zap.String("influencer_id", inf.ID.Hex()))
	respond.JSON(w, http.StatusCreated, inf)
}

// ServeList handles GET /influencers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := influencerstore.New(h.DB).List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeOne handles GET /influencers/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inf, err := influencerstore.New(h.DB).GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, inf)
}

// HandleUpdate handles PATCH /influencers/{id}.
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

	inf, err := influencerstore.New(h.DB).Update(ctx, chi.URLParam(r, "id"), in.patch())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, inf)
}

// HandleDelete handles DELETE /influencers/{id}. Links that reference the
// influencer are kept.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inf, err := influencerstore.New(h.DB).Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("influencer deleted", zap.String("influencer_id", inf.ID.Hex()))
	respond.JSON(w, http.StatusOK, inf)
}
