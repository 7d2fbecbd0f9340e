// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/affiliatehub/internal/app/system/apperr"
	"github.com/dalemusser/affiliatehub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Handler answers requests the router cannot match with the same JSON
// error body the features use.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, h.Log, apperr.NotFound("Cannot %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusMethodNotAllowed, map[string]any{
		"statusCode": http.StatusMethodNotAllowed,
		"message":    "Method " + r.Method + " not allowed on " + r.URL.Path,
		"error":      http.StatusText(http.StatusMethodNotAllowed),
	})
}
