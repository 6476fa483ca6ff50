package orderControllers

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/junaidrashid-git/fishparque-api/store"
)

// GuestEmail stands in for a checkout that arrives without an email. There are
// no sessions, so nothing better is known about the buyer.
const GuestEmail = "guest@fishparque.local"

// -------- Request Structs --------
type PlaceOrderRequest struct {
	UserEmail   string            `json:"userEmail"`
	UserName    string            `json:"userName"`
	UserPhone   string            `json:"userPhone"`
	UserAddress string            `json:"userAddress"`
	Cart        []models.CartItem `json:"cart"`
	Total       float64           `json:"total"`
}

type UpdateOrderStatusRequest struct {
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// Service owns the order lifecycle: checkout and the admin status change.
type Service struct {
	store    *store.Store
	catalog  *catalog.Catalog
	notifier *notify.Dispatcher
	format   notify.Formatter
	hub      *Hub
	clock    clock.Clock
}

func NewService(st *store.Store, cat *catalog.Catalog, notifier *notify.Dispatcher, format notify.Formatter, hub *Hub, clk clock.Clock) *Service {
	return &Service{
		store:    st,
		catalog:  cat,
		notifier: notifier,
		format:   format,
		hub:      hub,
		clock:    clk,
	}
}

// -------- Helpers --------

// generateOrderNumber combines the placement time with random hex digits.
// Uniqueness is not checked against existing orders.
func generateOrderNumber(now string) string {
	// Example: FP20250908130500-1f0c9a2b
	return "FP" + now + "-" + uuid.NewString()[:8]
}

// priceCart rebuilds every line from the catalog so the stored prices, subtotals
// and total do not depend on what the client sent.
func (s *Service) priceCart(cart []models.CartItem) ([]models.CartItem, float64, error) {
	if len(cart) == 0 {
		return nil, 0, models.NewFieldError("cart", "is empty")
	}

	items := make([]models.CartItem, 0, len(cart))
	var total float64
	for _, line := range cart {
		product, ok := s.catalog.Lookup(line.ID)
		if !ok {
			return nil, 0, models.NewFieldError("cart", fmt.Sprintf("contains unknown product %q", line.ID))
		}
		if line.Quantity <= 0 || math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) {
			return nil, 0, models.NewFieldError("quantity of "+product.Name, "must be positive")
		}
		if line.Quantity < product.MinQty {
			return nil, 0, models.NewFieldError("quantity of "+product.Name,
				fmt.Sprintf("is below the minimum of %s%s", notify.FormatNumber(product.MinQty), product.Unit))
		}

		subtotal := line.Quantity * float64(product.Price)
		total += subtotal
		items = append(items, models.CartItem{
			ID:       line.ID,
			Name:     product.Name,
			Price:    product.Price,
			Unit:     product.Unit,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
	}
	return items, total, nil
}

func (s *Service) orderLogLine(order models.Order) string {
	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, fmt.Sprintf("%s (%s%s)", item.Name, notify.FormatNumber(item.Quantity), item.Unit))
	}
	return fmt.Sprintf("Order #%s | Date: %s | Name: %s | Phone: %s | Email: %s | Address: %s | Total: %s | Items: %s",
		order.OrderNumber, order.Date,
		order.Customer.Name, order.Customer.Phone, order.Customer.Email, order.Customer.Address,
		s.format.Amount(order.Total), strings.Join(items, ", "))
}

// -------- Core Logic --------

// PlaceOrder turns a checked out cart into a pending order and persists it.
func (s *Service) PlaceOrder(req PlaceOrderRequest) (models.Order, error) {
	items, total, err := s.priceCart(req.Cart)
	if err != nil {
		return models.Order{}, err
	}
	if req.Total != 0 && math.Abs(req.Total-total) > 0.005 {
		log.Printf("⚠️ Client total %s does not match computed total %s, keeping computed",
			notify.FormatNumber(req.Total), notify.FormatNumber(total))
	}

	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		email = GuestEmail
	}

	now := s.clock.Now().UTC()
	order := models.Order{
		OrderNumber: generateOrderNumber(now.Format("20060102150405")),
		Date:        now.Format(models.OrderDateLayout),
		Customer: models.Customer{
			Name:    req.UserName,
			Email:   email,
			Phone:   req.UserPhone,
			Address: req.UserAddress,
		},
		Items:  items,
		Total:  total,
		Status: models.OrderStatusPending,
	}

	err = s.store.UpdateOrders(func(orders []models.Order) ([]models.Order, error) {
		return append(orders, order), nil
	})
	if err != nil {
		return models.Order{}, errors.Annotatef(err, "saving order %s", order.OrderNumber)
	}
	log.Printf("✅ Order %s saved", order.OrderNumber)

	// The text log is a courtesy copy; the JSON collection is authoritative.
	if err := s.store.AppendLine(store.OrderLog, s.orderLogLine(order)); err != nil {
		log.Printf("❌ Failed to append order %s to %s: %v", order.OrderNumber, store.OrderLog, err)
	}

	s.hub.Broadcast(OrderEvent{Type: EventOrderCreated, Order: order})
	s.notifier.Dispatch(s.format.OrderPlaced(order))

	return order, nil
}

// SetOrderStatus moves an existing order to status. Only the named order changes.
func (s *Service) SetOrderStatus(orderNumber, status string) (models.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return models.Order{}, models.NewFieldError("orderNumber", "is required")
	}
	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return models.Order{}, models.NewFieldError("status",
			fmt.Sprintf("must be %q or %q", models.OrderStatusPending, models.OrderStatusDelivered))
	}

	var updated models.Order
	err = s.store.UpdateOrders(func(orders []models.Order) ([]models.Order, error) {
		for i := range orders {
			if orders[i].OrderNumber == orderNumber {
				orders[i].Status = newStatus
				updated = orders[i]
				return orders, nil
			}
		}
		return nil, errors.NotFoundf("order %s", orderNumber)
	})
	if err != nil {
		return models.Order{}, err
	}
	log.Printf("✅ Order %s status updated to %s", orderNumber, newStatus)

	s.hub.Broadcast(OrderEvent{Type: EventOrderStatus, Order: updated})
	return updated, nil
}

// OrdersFor returns the orders placed with the given customer email.
func (s *Service) OrdersFor(email string) []models.Order {
	orders := []models.Order{}
	for _, order := range s.store.Orders() {
		if order.Customer.Email == email {
			orders = append(orders, order)
		}
	}
	return orders
}

// SearchOrders returns all orders, or only those whose number, customer name,
// email or phone contains query (case-insensitive).
func (s *Service) SearchOrders(query string) []models.Order {
	all := s.store.Orders()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}

	orders := []models.Order{}
	for _, order := range all {
		if strings.Contains(strings.ToLower(order.OrderNumber), query) ||
			strings.Contains(strings.ToLower(order.Customer.Name), query) ||
			strings.Contains(strings.ToLower(order.Customer.Email), query) ||
			strings.Contains(order.Customer.Phone, query) {
			orders = append(orders, order)
		}
	}
	return orders
}
