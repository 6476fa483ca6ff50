package models

import (
	"errors"
	"strings"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the goods
)

// ParseOrderStatus maps a free-form status string to one of the known order statuses.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Customer is the snapshot of the buyer's details taken at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CartItem is one line of a checked out cart. ID is the catalog product key.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    int     `json:"price"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type Order struct {
	OrderNumber string      `json:"orderNumber"`
	Date        string      `json:"date"`
	Customer    Customer    `json:"customer"`
	Items       []CartItem  `json:"items"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
}

// OrderDateLayout is the layout of Order.Date.
const OrderDateLayout = "2006-01-02 15:04:05"
