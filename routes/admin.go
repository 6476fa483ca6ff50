package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/fishparque-api/controllers/admin"
	feedbackControllers "github.com/junaidrashid-git/fishparque-api/controllers/feedback"
	orderControllers "github.com/junaidrashid-git/fishparque-api/controllers/order"
	userControllers "github.com/junaidrashid-git/fishparque-api/controllers/user"
	"github.com/junaidrashid-git/fishparque-api/metrics"
	"github.com/junaidrashid-git/fishparque-api/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// SetupAdminRoutes registers all “/api/admin/*” endpoints. Requires the admin key.
func SetupAdminRoutes(api *gin.RouterGroup, s *Services) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdminKey(s.AdminKey))
	{
		adminGroup.GET("/stats", adminController.GetStats(s.Store))
		adminGroup.GET("/metrics", metricsHandler(s))

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(s.Orders))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(s.Orders))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler(s.Hub))
		adminGroup.POST("/order/status", orderControllers.UpdateOrderStatusHandler(s.Orders))

		// ─────────── Users ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(s.Users))
		adminGroup.GET("/users/export", userControllers.ExportUsersToExcel(s.Users))

		// ─────────── Feedback ───────────
		adminGroup.GET("/feedbacks", feedbackControllers.GetAllFeedbacksHandler(s.Feedback))
		adminGroup.POST("/feedback/reply", feedbackControllers.ReplyFeedbackHandler(s.Feedback))
	}
}

func metricsHandler(s *Services) gin.HandlerFunc {
	collectors := []prometheus.Collector{
		metrics.NewStatsCollector(func() adminController.Stats {
			return adminController.ComputeStats(s.Store)
		}, s.Hub.Clients),
	}
	if s.Metrics != nil {
		collectors = append(collectors, s.Metrics)
	}
	return metrics.Handler(collectors...)
}
