package settings

import (
	"net/http"

	"catering/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log.Named("settings")}
}

// --------------------------------------------------
// GET /api/settings
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	values, err := h.service.All(c.Request.Context())
	if err != nil {
		h.log.Error("load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": values})
}

// --------------------------------------------------
// ADMIN: PUT /api/admin/settings
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected an object of string values"})
		return
	}

	values, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		if validation.Abort(c, err) {
			return
		}
		h.log.Error("update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": values})
}
