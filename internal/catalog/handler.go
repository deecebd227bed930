package catalog

import (
	"errors"
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
	return &Handler{service: service, log: log.Named("catalog")}
}

type dishRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	IsFasting    bool     `json:"isFasting"`
	IsVegetarian bool     `json:"isVegetarian"`
	IsVegan      bool     `json:"isVegan"`
	IsGlutenFree bool     `json:"isGlutenFree"`
	ImageURL     *string  `json:"imageUrl"`
}

func (r dishRequest) toDish(id string) *Dish {
	return &Dish{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Tags:         r.Tags,
		IsFasting:    r.IsFasting,
		IsVegetarian: r.IsVegetarian,
		IsVegan:      r.IsVegan,
		IsGlutenFree: r.IsGlutenFree,
		ImageURL:     r.ImageURL,
	}
}

type menuRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DishCount   int      `json:"dishCount"`
	Price       Money    `json:"price"`
	Position    int      `json:"position"`
	Published   *bool    `json:"published"`
	DishIDs     []string `json:"dishIds"`
}

func (r menuRequest) toMenu(id string) *Menu {
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	return &Menu{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		DishCount:   r.DishCount,
		Price:       r.Price,
		Position:    r.Position,
		Published:   published,
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	if validation.Abort(c, err) {
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.log.Error("catalog request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// --------------------------------------------------
// GET /api/menus
// --------------------------------------------------
func (h *Handler) Catalog(c *gin.Context) {
	menus, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

// --------------------------------------------------
// GET /api/admin/dishes?category=
// --------------------------------------------------
func (h *Handler) ListDishes(c *gin.Context) {
	dishes, err := h.service.ListDishes(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

// --------------------------------------------------
// ADMIN: dishes
// --------------------------------------------------
func (h *Handler) GetDish(c *gin.Context) {
	dish, err := h.service.GetDish(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (h *Handler) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish := req.toDish("")
	if err := h.service.CreateDish(c.Request.Context(), dish); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dish)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dish := req.toDish(c.Param("id"))
	if err := h.service.UpdateDish(c.Request.Context(), dish); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

func (h *Handler) DeleteDish(c *gin.Context) {
	if err := h.service.DeleteDish(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// ADMIN: menus
// --------------------------------------------------
func (h *Handler) ListMenus(c *gin.Context) {
	menus, err := h.service.ListMenus(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := h.service.GetMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	menu, err := h.service.CreateMenu(c.Request.Context(), req.toMenu(""), req.DishIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, menu)
}

func (h *Handler) UpdateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	menu, err := h.service.UpdateMenu(c.Request.Context(), req.toMenu(c.Param("id")), req.DishIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) SetMenuDishes(c *gin.Context) {
	var req struct {
		DishIDs []string `json:"dishIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.DishIDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dishIds is required"})
		return
	}

	menu, err := h.service.SetMenuDishes(c.Request.Context(), c.Param("id"), req.DishIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) DeleteMenu(c *gin.Context) {
	if err := h.service.DeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
