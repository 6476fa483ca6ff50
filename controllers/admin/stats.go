package adminController

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/fishparque-api/controllers/respond"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/store"
)

// Stats are the dashboard counters.
type Stats struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalUsers      int     `json:"totalUsers"`
	PendingOrders   int     `json:"pendingOrders"`
	PendingFeedback int     `json:"pendingFeedback"`
}

// ComputeStats reads every collection once and tallies it.
func ComputeStats(st *store.Store) Stats {
	var stats Stats

	orders := st.Orders()
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.TotalRevenue += o.Total
		if o.Status == models.OrderStatusPending {
			stats.PendingOrders++
		}
	}

	stats.TotalUsers = len(st.Users())

	for _, fb := range st.Feedbacks() {
		if fb.Status == models.FeedbackStatusPending {
			stats.PendingFeedback++
		}
	}
	return stats
}

// GET /api/admin/stats
func GetStats(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"stats": ComputeStats(st)})
	}
}
