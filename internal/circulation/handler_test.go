package circulation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "checkouts.json"), zap.NewNop())
	require.NoError(t, err)
	handler := NewHandler(NewService(store, zap.NewNop()), zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/items/{id}/checkout", handler.HandleStatus)
	r.Post("/api/items/{id}/checkout", handler.HandleCheckout)
	r.Post("/api/items/{id}/checkin", handler.HandleCheckin)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCheckoutValidation(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/items/item-A/checkout", `{"staffMember":"Staff1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/items/item-A/checkout", `{"performedBy":"Alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/items/item-A/checkout", `{"performedBy":"Alice","staffMember":"Staff1","dueDate":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheckoutConflict(t *testing.T) {
	r := newTestRouter(t)
	body := `{"performedBy":"Alice","staffMember":"Staff1","dueDate":"2030-01-15"}`

	rec := do(r, http.MethodPost, "/api/items/item-A/checkout", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CheckoutRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, ActionCheckout, created.Action)
	require.NotNil(t, created.DueDate)

	rec = do(r, http.MethodPost, "/api/items/item-A/checkout", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleCheckinConflict(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/items/item-A/checkin", `{"performedBy":"Alice","staffMember":"Staff1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleStatusIncludesHistory(t *testing.T) {
	r := newTestRouter(t)

	rec := do(r, http.MethodPost, "/api/items/item-A/checkout", `{"performedBy":"Alice","staffMember":"Staff1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodGet, "/api/items/item-A/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsCheckedOut bool             `json:"isCheckedOut"`
		History      []CheckoutRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsCheckedOut)
	assert.Len(t, resp.History, 1)
}
