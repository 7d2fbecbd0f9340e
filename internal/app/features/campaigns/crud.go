package campaigns

import (
	"context"
	"net/http"

	campaignstore "github.com/dalemusser/affiliatehub/internal/app/store/campaigns"
	"github.com/dalemusser/affiliatehub/internal/app/system/inputval"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /campaigns.
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
	if err := checkDates(*in.StartDate, *in.EndDate); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := campaignstore.New(h.DB).Create(ctx, in.model())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("campaign created", zap.String("campaign_id", c.ID.Hex()))
	respond.JSON(w, http.StatusCreated, c)
}

// ServeList handles GET /campaigns. Each campaign carries its influencers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "campaigns.list")
	defer cancel()

	views, err := h.reader().List(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, views)
}

// ServeOne handles GET /campaigns/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "campaigns.get")
	defer cancel()

	view, err := h.reader().Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, view)
}

// HandleUpdate handles PATCH /campaigns/{id}. When only one end of the date
// window is submitted it is checked against the stored other end.
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

	id := chi.URLParam(r, "id")
	store := campaignstore.New(h.DB)

	if in.StartDate != nil || in.EndDate != nil {
		start, end := in.StartDate, in.EndDate
		if start == nil || end == nil {
			cur, err := store.GetByID(ctx, id)
			if err != nil {
				respond.Error(w, r, h.Log, err)
				return
			}
			if start == nil {
				start = &cur.StartDate
			}
			if end == nil {
				end = &cur.EndDate
			}
		}
		if err := checkDates(*start, *end); err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
	}

	c, err := store.Update(ctx, id, in.patch())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// HandleDelete handles DELETE /campaigns/{id}. Links are kept.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := campaignstore.New(h.DB).Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("campaign deleted", zap.String("campaign_id", c.ID.Hex()))
	respond.JSON(w, http.StatusOK, c)
}
