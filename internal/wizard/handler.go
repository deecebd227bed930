package wizard

import (
	"net/http"

	"catering/internal/builder"
	"catering/internal/core"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store     *Store
	catalog   core.CatalogReader
	submitter builder.Submitter
	log       *zap.Logger
}

func NewHandler(store *Store, catalog core.CatalogReader, submitter builder.Submitter, log *zap.Logger) *Handler {
	return &Handler{store: store, catalog: catalog, submitter: submitter, log: log.Named("wizard")}
}

// withDraft loads the :id draft and runs fn with the draft locked. fn
// reports whether it changed anything.
func (h *Handler) withDraft(c *gin.Context, fn func(b *builder.Builder) bool) {
	id := c.Param("id")
	d, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found or expired"})
		return
	}

	d.mu.Lock()
	changed := fn(d.b)
	view := render(id, d.b)
	d.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"changed": changed, "view": view})
}

// --------------------------------------------------
// POST /api/order/drafts
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	menus, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		h.log.Error("load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	b, err := builder.New(menus)
	if err != nil {
		h.log.Error("catalog rejected by builder", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}

	id, _ := h.store.Create(b)
	c.JSON(http.StatusCreated, gin.H{"id": id, "view": render(id, b)})
}

func (h *Handler) Get(c *gin.Context) {
	h.withDraft(c, func(*builder.Builder) bool { return false })
}

// --------------------------------------------------
// Quantities
// --------------------------------------------------

type portionsRequest struct {
	MenuID string  `json:"menuId" binding:"required"`
	Delta  *int    `json:"delta"`
	Value  *string `json:"value"`
}

func (h *Handler) Portions(c *gin.Context) {
	var req portionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Delta == nil) == (req.Value == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menuId and exactly one of delta or value are required"})
		return
	}
	h.withDraft(c, func(b *builder.Builder) bool {
		if req.Delta != nil {
			return b.SetPortions(req.MenuID, *req.Delta)
		}
		return b.SetPortionsText(req.MenuID, *req.Value)
	})
}

func (h *Handler) Start(c *gin.Context) {
	h.withDraft(c, (*builder.Builder).StartDishSelection)
}

// --------------------------------------------------
// Dish selection
// --------------------------------------------------

func (h *Handler) Next(c *gin.Context) {
	h.withDraft(c, (*builder.Builder).GoToNextMenu)
}

func (h *Handler) Prev(c *gin.Context) {
	h.withDraft(c, (*builder.Builder).GoToPrevMenu)
}

func (h *Handler) Back(c *gin.Context) {
	h.withDraft(c, (*builder.Builder).BackToDishes)
}

func (h *Handler) Toggle(c *gin.Context) {
	var req struct {
		MenuID string `json:"menuId" binding:"required"`
		DishID string `json:"dishId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menuId and dishId are required"})
		return
	}
	h.withDraft(c, func(b *builder.Builder) bool {
		return b.ToggleDish(req.MenuID, req.DishID)
	})
}

type groupRequest struct {
	Group builder.Group `json:"group"`
}

func (h *Handler) Filter(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.withDraft(c, func(b *builder.Builder) bool {
		return b.SetFilter(req.Group)
	})
}

func (h *Handler) Expand(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Group == builder.GroupAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group is required"})
		return
	}
	h.withDraft(c, func(b *builder.Builder) bool {
		return b.ToggleExpanded(req.Group)
	})
}

// --------------------------------------------------
// POST /api/order/drafts/:id/checkout
// --------------------------------------------------

// Checkout submits the draft. The draft stays locked only while it is
// frozen and while the result is recorded, never across the submission
// itself; a concurrent second checkout sees Submitting and is refused.
func (h *Handler) Checkout(c *gin.Context) {
	var contact builder.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, builder.Result{Success: false, Message: "invalid request body"})
		return
	}
	if contact.Locale == "" {
		contact.Locale = c.GetHeader("Accept-Language")
	}

	id := c.Param("id")
	d, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found or expired"})
		return
	}

	d.mu.Lock()
	form, err := d.b.BeginSubmit(contact)
	d.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusConflict, builder.Result{Success: false, Message: err.Error()})
		return
	}

	res := h.submitter.Submit(c.Request.Context(), form)

	d.mu.Lock()
	d.b.FinishSubmit(res)
	view := render(id, d.b)
	d.mu.Unlock()

	if res.Success {
		h.store.Remove(id)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": res.Success,
		"message": res.Message,
		"view":    view,
	})
}
