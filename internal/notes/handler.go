// internal/notes/handler.go
package notes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"circdash/internal/api"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleList returns all notes for an item.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.service.List(chi.URLParam(r, "id")))
}

// HandleAdd appends a note to an item.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var req struct {
		Text      string `json:"text"`
		CreatedBy string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" || req.CreatedBy == "" {
		api.WriteError(w, http.StatusBadRequest, "text and createdBy are required")
		return
	}

	note, err := h.service.Add(r.Context(), itemID, req.Text, req.CreatedBy)
	if err != nil {
		h.logger.Error("add note failed", zap.String("item_id", itemID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to add note")
		return
	}

	api.WriteJSON(w, http.StatusCreated, note)
}
