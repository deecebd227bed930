package media

import (
	"errors"
	"net/http"
	"strconv"

	"catering/internal/storage"
	"catering/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log.Named("media")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if validation.Abort(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "media file not found"})
	case errors.Is(err, storage.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error("media request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// --------------------------------------------------
// GET /api/gallery
// --------------------------------------------------
func (h *Handler) Gallery(c *gin.Context) {
	files, err := h.service.Gallery(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": files})
}

// --------------------------------------------------
// ADMIN: POST /api/admin/media (multipart: file, alt, inGallery)
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "field": "file"})
		return
	}
	defer file.Close()

	inGallery, _ := strconv.ParseBool(c.PostForm("inGallery"))
	f, err := h.service.Upload(c.Request.Context(), UploadInput{
		Filename:  header.Filename,
		Size:      header.Size,
		Body:      file,
		Alt:       c.PostForm("alt"),
		InGallery: inGallery,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *Handler) List(c *gin.Context) {
	files, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": files})
}

func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Alt       *string `json:"alt"`
		InGallery *bool   `json:"inGallery"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	f, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Alt, req.InGallery)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
