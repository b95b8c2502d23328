// internal/catalog/handler.go
package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"circdash/internal/api"
	"circdash/internal/circulation"
)

type Handler struct {
	service     Service
	circulation circulation.Service
	logger      *zap.Logger
}

func NewHandler(service Service, circ circulation.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, circulation: circ, logger: logger}
}

// HandleSearch filters and paginates the item list.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	api.WriteJSON(w, http.StatusOK, h.service.Search(SearchOptions{
		Q:        q.Get("q"),
		Title:    q.Get("title"),
		Author:   q.Get("author"),
		Barcode:  q.Get("barcode"),
		Location: q.Get("location"),
		Status:   q.Get("status"),
		ItemType: q.Get("itemType"),
		FromDate: q.Get("fromDate"),
		ToDate:   q.Get("toDate"),
		Page:     intParam(q.Get("page")),
		PageSize: intParam(q.Get("pageSize")),
	}))
}

// HandleDetail returns an item's full record together with its current
// checkout status and ledger history.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.service.ItemWithHistory(id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			api.WriteError(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("item detail failed", zap.String("item_id", id), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to get item")
		return
	}

	type response struct {
		*Item
		CheckoutStatus  circulation.Status           `json:"checkoutStatus"`
		CheckoutHistory []circulation.CheckoutRecord `json:"checkoutHistory"`
	}
	api.WriteJSON(w, http.StatusOK, response{
		Item:            item,
		CheckoutStatus:  h.circulation.Status(item.ID),
		CheckoutHistory: h.circulation.History(item.ID),
	})
}

func intParam(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
