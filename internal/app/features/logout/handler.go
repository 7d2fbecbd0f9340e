// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// HandleLogout handles POST /auth/logout. It expires the session cookie and
// always answers 204; bearer tokens stay valid until they expire.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if h.SessionMgr != nil {
		h.Log.Debug("logout", zap.Bool("had_session", h.SessionMgr.Token(r) != ""))
		if err := h.SessionMgr.Clear(w, r); err != nil {
			h.Log.Error("logout: clear session", zap.Error(err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
