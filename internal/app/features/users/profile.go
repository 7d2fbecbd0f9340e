package users

import (
	"net/http"

	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"go.uber.org/zap"
)

type profileResponse struct {
	Message string `json:"message"`
}

// ServeProfile handles GET /users/profile. It only confirms that the bearer
// guard let the caller through.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	if p, ok := auth.CurrentUser(r); ok {
		h.Log.Debug("profile requested", zap.String("user_id", p.ID))
	}
	respond.JSON(w, http.StatusOK, profileResponse{Message: "This is a protected route"})
}
