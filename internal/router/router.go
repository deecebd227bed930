package router

import (
	"net/http"
	"time"

	"catering/internal/auth"
	"catering/internal/blog"
	"catering/internal/catalog"
	"catering/internal/logger"
	"catering/internal/media"
	"catering/internal/middleware"
	"catering/internal/orders"
	"catering/internal/settings"
	"catering/internal/stats"
	"catering/internal/wizard"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the HTTP surface is built from.
type Deps struct {
	Log         *zap.Logger
	Tokens      *auth.Tokens
	CORSOrigins []string

	Auth     *auth.Handler
	Catalog  *catalog.Handler
	Wizard   *wizard.Handler
	Orders   *orders.Handler
	Blog     *blog.Handler
	Media    *media.Handler
	Settings *settings.Handler
	Stats    *stats.Handler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinMiddleware(d.Log), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ───────────────────────── PUBLIC ─────────────────────────
	api.GET("/menus", d.Catalog.Catalog)
	api.GET("/blog", d.Blog.ListPublished)
	api.GET("/blog/:slug", d.Blog.GetPublished)
	api.GET("/gallery", d.Media.Gallery)
	api.GET("/settings", d.Settings.Get)
	api.POST("/orders", d.Orders.Checkout)

	// ───────────────────────── ORDER WIZARD ─────────────────────────
	drafts := api.Group("/order/drafts")
	{
		drafts.POST("", d.Wizard.Create)
		drafts.GET("/:id", d.Wizard.Get)
		drafts.POST("/:id/portions", d.Wizard.Portions)
		drafts.POST("/:id/start", d.Wizard.Start)
		drafts.POST("/:id/next", d.Wizard.Next)
		drafts.POST("/:id/prev", d.Wizard.Prev)
		drafts.POST("/:id/back", d.Wizard.Back)
		drafts.POST("/:id/toggle", d.Wizard.Toggle)
		drafts.POST("/:id/filter", d.Wizard.Filter)
		drafts.POST("/:id/expand", d.Wizard.Expand)
		drafts.POST("/:id/checkout", d.Wizard.Checkout)
	}

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", d.Auth.Login)
		authGroup.POST("/logout", d.Auth.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(d.Tokens), d.Auth.Me)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRole(d.Log, auth.RoleAdmin),
	)
	{
		// Catalog
		admin.GET("/dishes", d.Catalog.ListDishes)
		admin.POST("/dishes", d.Catalog.CreateDish)
		admin.GET("/dishes/:id", d.Catalog.GetDish)
		admin.PUT("/dishes/:id", d.Catalog.UpdateDish)
		admin.DELETE("/dishes/:id", d.Catalog.DeleteDish)

		admin.GET("/menus", d.Catalog.ListMenus)
		admin.POST("/menus", d.Catalog.CreateMenu)
		admin.GET("/menus/:id", d.Catalog.GetMenu)
		admin.PUT("/menus/:id", d.Catalog.UpdateMenu)
		admin.PUT("/menus/:id/dishes", d.Catalog.SetMenuDishes)
		admin.DELETE("/menus/:id", d.Catalog.DeleteMenu)

		// Orders
		admin.GET("/orders", d.Orders.List)
		admin.GET("/orders/:id", d.Orders.Get)
		admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)
		admin.DELETE("/orders/:id", d.Orders.Delete)

		// Blog
		admin.GET("/blog", d.Blog.List)
		admin.POST("/blog", d.Blog.Create)
		admin.GET("/blog/:id", d.Blog.Get)
		admin.PUT("/blog/:id", d.Blog.Update)
		admin.POST("/blog/:id/publish", d.Blog.Publish)
		admin.POST("/blog/:id/unpublish", d.Blog.Unpublish)
		admin.DELETE("/blog/:id", d.Blog.Delete)

		// Media
		admin.GET("/media", d.Media.List)
		admin.POST("/media", d.Media.Upload)
		admin.PATCH("/media/:id", d.Media.Update)
		admin.DELETE("/media/:id", d.Media.Delete)

		// Settings
		admin.PUT("/settings", d.Settings.Update)

		// Dashboard
		admin.GET("/stats", d.Stats.Get)
	}

	return r
}
