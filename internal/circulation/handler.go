// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

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

// HandleStatus returns the derived status plus the full ledger sequence
// for one item.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	type response struct {
		Status
		History []CheckoutRecord `json:"history"`
	}
	api.WriteJSON(w, http.StatusOK, response{
		Status:  h.service.Status(itemID),
		History: h.service.History(itemID),
	})
}

// HandleCheckout checks an item out.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var req struct {
		PerformedBy string `json:"performedBy"`
		StaffMember string `json:"staffMember"`
		Note        string `json:"note"`
		DueDate     string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PerformedBy == "" {
		api.WriteError(w, http.StatusBadRequest, "performedBy is required")
		return
	}
	if req.StaffMember == "" {
		api.WriteError(w, http.StatusBadRequest, "staffMember is required")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDueDate(req.DueDate)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "dueDate must be an ISO date")
			return
		}
		dueDate = &parsed
	}

	rec, err := h.service.Checkout(r.Context(), itemID, req.PerformedBy, req.StaffMember, req.Note, dueDate)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedOut) {
			api.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("checkout failed", zap.String("item_id", itemID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to check out item")
		return
	}

	api.WriteJSON(w, http.StatusCreated, rec)
}

// HandleCheckin checks an item back in.
func (h *Handler) HandleCheckin(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	var req struct {
		PerformedBy string `json:"performedBy"`
		StaffMember string `json:"staffMember"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PerformedBy == "" {
		api.WriteError(w, http.StatusBadRequest, "performedBy is required")
		return
	}
	if req.StaffMember == "" {
		api.WriteError(w, http.StatusBadRequest, "staffMember is required")
		return
	}

	rec, err := h.service.Checkin(r.Context(), itemID, req.PerformedBy, req.StaffMember, req.Note)
	if err != nil {
		if errors.Is(err, ErrNotCheckedOut) {
			api.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("checkin failed", zap.String("item_id", itemID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to check in item")
		return
	}

	api.WriteJSON(w, http.StatusCreated, rec)
}

var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDueDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dueDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
