package orders

import (
	"errors"
	"net/http"
	"strconv"

	"catering/internal/builder"
	"catering/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log.Named("orders")}
}

// --------------------------------------------------
// POST /api/orders
// --------------------------------------------------
func (h *Handler) Checkout(c *gin.Context) {
	var form builder.CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, builder.Result{Success: false, Message: "invalid request body"})
		return
	}
	if form.Locale == "" {
		form.Locale = c.GetHeader("Accept-Language")
	}

	order, err := h.service.Checkout(c.Request.Context(), form)
	if err != nil {
		if ve, ok := validation.As(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": ve.Message,
				"field":   ve.Field,
			})
			return
		}
		h.log.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, builder.Result{Success: false, Message: msgFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msgReceived,
		"orderId": order.ID,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if validation.Abort(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("orders request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// ADMIN: GET /api/admin/orders?status=&limit=&offset=
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.service.List(c.Request.Context(), ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
