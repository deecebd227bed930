package stats

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	dateLayout  = "2006-01-02"
	defaultDays = 30
	maxWindow   = 366 * 24 * time.Hour
)

type Handler struct {
	service *Service
	now     func() time.Time
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, now: time.Now, log: log.Named("stats")}
}

// --------------------------------------------------
// GET /api/admin/stats?from=YYYY-MM-DD&to=YYYY-MM-DD
// --------------------------------------------------
// Both dates are inclusive days. Without them the last 30 days are used.
func (h *Handler) Get(c *gin.Context) {
	from, to, ok := h.window(c)
	if !ok {
		return
	}

	snap, err := h.service.Snapshot(c.Request.Context(), from, to)
	if err != nil {
		h.log.Error("stats snapshot failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) window(c *gin.Context) (time.Time, time.Time, bool) {
	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	to := today.AddDate(0, 0, 1)
	if raw := c.Query("to"); raw != "" {
		d, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD", "field": "to"})
			return time.Time{}, time.Time{}, false
		}
		to = d.AddDate(0, 0, 1)
	}

	from := to.AddDate(0, 0, -defaultDays)
	if raw := c.Query("from"); raw != "" {
		d, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD", "field": "from"})
			return time.Time{}, time.Time{}, false
		}
		from = d
	}

	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must not be after to", "field": "from"})
		return time.Time{}, time.Time{}, false
	}
	if to.Sub(from) > maxWindow {
		c.JSON(http.StatusBadRequest, gin.H{"error": "range is limited to one year", "field": "from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
