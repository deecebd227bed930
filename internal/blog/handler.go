package blog

import (
	"errors"
	"net/http"
	"strconv"

	"catering/internal/i18n"
	"catering/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service       *Service
	defaultLocale string
	log           *zap.Logger
}

func NewHandler(service *Service, defaultLocale string, log *zap.Logger) *Handler {
	return &Handler{service: service, defaultLocale: defaultLocale, log: log.Named("blog")}
}

type postRequest struct {
	Slug          string  `json:"slug"`
	Locale        string  `json:"locale"`
	Title         string  `json:"title"`
	Excerpt       string  `json:"excerpt"`
	Content       string  `json:"content"`
	CoverImageURL *string `json:"coverImageUrl"`
	Published     bool    `json:"published"`
}

func (r postRequest) toPost(id string) *Post {
	return &Post{
		ID:            id,
		Slug:          r.Slug,
		Locale:        r.Locale,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		CoverImageURL: r.CoverImageURL,
		Published:     r.Published,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if validation.Abort(c, err) {
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	h.log.Error("blog request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// locale takes ?locale= first, then Accept-Language.
func (h *Handler) locale(c *gin.Context) string {
	if l := c.Query("locale"); l != "" {
		return i18n.Negotiate(l, h.defaultLocale)
	}
	return i18n.Negotiate(c.GetHeader("Accept-Language"), h.defaultLocale)
}

func paging(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}

// --------------------------------------------------
// GET /api/blog?locale=&limit=&offset=
// --------------------------------------------------
func (h *Handler) ListPublished(c *gin.Context) {
	limit, offset := paging(c)
	posts, total, err := h.service.Published(c.Request.Context(), h.locale(c), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

// --------------------------------------------------
// GET /api/blog/:slug?locale=
// --------------------------------------------------
func (h *Handler) GetPublished(c *gin.Context) {
	post, err := h.service.PublishedBySlug(c.Request.Context(), c.Param("slug"), h.locale(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	limit, offset := paging(c)
	posts, total, err := h.service.List(c.Request.Context(), c.Query("locale"), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post := req.toPost("")
	if err := h.service.Create(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post := req.toPost(c.Param("id"))
	if err := h.service.Update(c.Request.Context(), post); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *Handler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Handler) setPublished(c *gin.Context, published bool) {
	post, err := h.service.SetPublished(c.Request.Context(), c.Param("id"), published)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
