package orderControllers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/controllers/respond"
)

// -------- Handlers --------

// POST /api/order
func PlaceOrderHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "Invalid order data")
			return
		}

		order, err := svc.PlaceOrder(req)
		switch {
		case err == nil:
		case errors.Is(err, errors.NotValid):
			respond.Fail(c, "Invalid order data: "+err.Error())
			return
		default:
			log.Printf("❌ Order error: %v", err)
			respond.Fail(c, "Order failed. Please try again.")
			return
		}

		respond.OK(c, gin.H{
			"message": "Thank you! Your order #" + order.OrderNumber +
				" has been placed successfully. Total: " + svc.format.Amount(order.Total),
			"orderNumber": order.OrderNumber,
		})
	}
}

// GET /api/orders/:email
func GetUserOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"orders": svc.OrdersFor(c.Param("email"))})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"orders": svc.SearchOrders(c.Query("q"))})
	}
}

// POST /api/admin/order/status
func UpdateOrderStatusHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, "Invalid request")
			return
		}

		_, err := svc.SetOrderStatus(req.OrderNumber, req.Status)
		switch {
		case err == nil:
			respond.OK(c, gin.H{"message": "Order status updated"})
		case errors.Is(err, errors.NotFound):
			respond.Fail(c, "Order not found")
		case errors.Is(err, errors.NotValid):
			respond.Fail(c, "Invalid request: "+err.Error())
		default:
			log.Printf("❌ Status update error: %v", err)
			respond.Fail(c, "Failed to update status")
		}
	}
}
