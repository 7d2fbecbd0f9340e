// internal/app/features/register/handler.go
package register

import (
	"context"
	"net/http"

	"github.com/dalemusser/affiliatehub/internal/app/system/auth"
	"github.com/dalemusser/affiliatehub/internal/app/system/inputval"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log  *zap.Logger
	Auth *auth.Service
}

func NewHandler(svc *auth.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Log:  logger,
		Auth: svc,
	}
}

// HandleRegister handles POST /auth/register. The new account is signed in
// and the response has the same shape as a login.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := respond.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.normalize()
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sess, err := h.Auth.Register(ctx, auth.RegisterInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Roles:    in.Roles,
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, sess)
}
