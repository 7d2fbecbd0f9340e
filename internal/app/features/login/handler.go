// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/inputval"
	"github.com/dalemusser/affiliatehub/internal/app/system/normalize"
	"github.com/dalemusser/affiliatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Auth       *auth.Service
	SessionMgr *auth.SessionManager // optional; nil disables the cookie
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(svc *auth.Service, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Auth:       svc,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
	}
}

type loginInput struct {
	Username string `json:"username" validate:"required" label:"Username"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.Username = normalize.Username(in.Username)
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Username); !ok {
			h.Log.Warn("login throttled",
				zap.String("username", in.Username),
				zap.String("ip", ratelimit.ClientIP(r)))
			respond.Error(w, r, h.Log, apperr.TooManyRequests("%s", reason))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Auth.Login(ctx, in.Username, in.Password)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetUser(in.Username)
	}

	// Browser clients may rely on the cookie instead of the header.
	if h.SessionMgr != nil {
		if err := h.SessionMgr.SaveToken(w, r, sess.AccessToken); err != nil {
			h.Log.Warn("login: save session", zap.Error(err))
		}
	}
	respond.JSON(w, http.StatusOK, sess)
}
