package routes

import (
	"github.com/gin-gonic/gin"
	feedbackControllers "github.com/junaidrashid-git/fishparque-api/controllers/feedback"
	orderControllers "github.com/junaidrashid-git/fishparque-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/fishparque-api/controllers/product"
	userControllers "github.com/junaidrashid-git/fishparque-api/controllers/user"
)

// SetupPublicRoutes registers the customer facing endpoints. None of them are authenticated.
func SetupPublicRoutes(api *gin.RouterGroup, s *Services) {
	// ──────────────── Accounts ────────────────
	api.POST("/register", userControllers.RegisterHandler(s.Users))
	api.POST("/login", userControllers.LoginHandler(s.Users))

	// ──────────────── Catalog ────────────────
	api.GET("/products", productcontroller.GetProducts(s.Catalog))

	// ──────────────── Orders ────────────────
	api.POST("/order", orderControllers.PlaceOrderHandler(s.Orders))
	// Any caller can list any email's orders.
	api.GET("/orders/:email", orderControllers.GetUserOrdersHandler(s.Orders))

	// ──────────────── Feedback ────────────────
	api.POST("/feedback", feedbackControllers.SubmitFeedbackHandler(s.Feedback))
}
