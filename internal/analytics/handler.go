// internal/analytics/handler.go
package analytics

import (
	"net/http"

	"circdash/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleStats returns catalog usage statistics.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.service.Stats())
}
