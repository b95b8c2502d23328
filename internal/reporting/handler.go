// internal/reporting/handler.go
package reporting

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

// HandleCheckedOut lists currently checked out items.
func (h *Handler) HandleCheckedOut(w http.ResponseWriter, r *http.Request) {
	items := h.service.CheckedOut()
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// HandleHistory returns the reconciled checkout history report.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reports := h.service.HistoryReport(Filters{
		Status:      q.Get("status"),
		FromDate:    q.Get("fromDate"),
		ToDate:      q.Get("toDate"),
		PerformedBy: q.Get("performedBy"),
		ItemID:      q.Get("itemId"),
	})
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// HandleStats returns reporting summary statistics.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.service.Stats())
}
