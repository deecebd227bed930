package orders

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupOrdersRouter(s *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, zap.NewNop())

	r := gin.New()
	r.POST("/api/orders", h.Checkout)
	r.GET("/admin/orders", h.List)
	r.GET("/admin/orders/:id", h.Get)
	r.PATCH("/admin/orders/:id/status", h.UpdateStatus)
	r.DELETE("/admin/orders/:id", h.Delete)
	return r
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func formValues(t *testing.T) url.Values {
	f := validForm(t)
	return url.Values{
		"orderData":   {f.OrderData},
		"clientName":  {f.ClientName},
		"clientPhone": {f.ClientPhone},
		"clientEmail": {f.ClientEmail},
		"address":     {f.Address},
		"eventDate":   {f.EventDate},
		"message":     {"Vegetarian guests: 4"},
	}
}

func TestCheckoutHandler_Success(t *testing.T) {
	s, repo, _ := newTestService()
	r := setupOrdersRouter(s)

	w := postForm(r, formValues(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, msgReceived, resp.Message)

	stored, err := repo.Get(t.Context(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian guests: 4", stored.Message)
	assert.Equal(t, "sr", stored.Locale)
}

func TestCheckoutHandler_LocaleFromHeader(t *testing.T) {
	s, repo, _ := newTestService()
	r := setupOrdersRouter(s)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(formValues(t).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	orders, _, err := repo.List(t.Context(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ru", orders[0].Locale)
}

func TestCheckoutHandler_ValidationError(t *testing.T) {
	s, _, _ := newTestService()
	r := setupOrdersRouter(s)

	values := formValues(t)
	values.Set("clientEmail", "nope")
	w := postForm(r, values)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"field":"clientEmail"`)
}

func TestAdminOrders_StatusFlow(t *testing.T) {
	s, _, _ := newTestService()
	r := setupOrdersRouter(s)
	order, err := s.Checkout(t.Context(), validForm(t))
	require.NoError(t, err)

	patch := func(status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"status": status})
		req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+order.ID+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusConflict, patch(StatusCompleted).Code)
	assert.Equal(t, http.StatusOK, patch(StatusConfirmed).Code)
	assert.Equal(t, http.StatusBadRequest, patch("LOST").Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders?status=CONFIRMED", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/orders/"+order.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders/"+order.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
