package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juju/clock"
	"github.com/junaidrashid-git/fishparque-api/auth"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/config"
	feedbackControllers "github.com/junaidrashid-git/fishparque-api/controllers/feedback"
	orderControllers "github.com/junaidrashid-git/fishparque-api/controllers/order"
	userControllers "github.com/junaidrashid-git/fishparque-api/controllers/user"
	"github.com/junaidrashid-git/fishparque-api/metrics"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/junaidrashid-git/fishparque-api/store"
)

// Services bundles everything the handlers need. It is built once in main.
type Services struct {
	Store     *store.Store
	Catalog   *catalog.Catalog
	Orders    *orderControllers.Service
	Feedback  *feedbackControllers.Service
	Users     *userControllers.Service
	Hub       *orderControllers.Hub
	Metrics   *metrics.Collector
	AdminKey  string
	StoreName string
}

// NewServices builds the handler dependencies from the loaded configuration.
func NewServices(cfg *config.Config, st *store.Store, cat *catalog.Catalog, dispatcher *notify.Dispatcher, clk clock.Clock) *Services {
	format := notify.Formatter{StoreName: cfg.StoreName, Currency: cfg.CurrencySymbol}
	hub := orderControllers.NewHub()

	return &Services{
		Store:     st,
		Catalog:   cat,
		Orders:    orderControllers.NewService(st, cat, dispatcher, format, hub, clk),
		Feedback:  feedbackControllers.NewService(st, dispatcher, format, clk),
		Users:     userControllers.NewService(st, auth.NewTokenIssuer(cfg.JWTSecret, clk), clk),
		Hub:       hub,
		Metrics:   metrics.NewCollector(),
		AdminKey:  cfg.AdminKey,
		StoreName: cfg.StoreName,
	}
}

// SetupRoutes is the single entry‐point that wires up the public and admin route groups.
func SetupRoutes(r *gin.Engine, s *Services) {
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware())
	}
	api := r.Group("/api")

	// 1️⃣ Public storefront routes
	SetupPublicRoutes(api, s)

	// 2️⃣ Admin routes (admin‐key protected)
	SetupAdminRoutes(api, s)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": s.StoreName + " API is running"})
	})
}
