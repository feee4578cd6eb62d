package order

import (
	"context"

	"nearmart/internal/domain"
)

// CreateInput is the fully allocated order graph to persist.
type CreateInput struct {
	CustomerID       string
	OrderCode        string
	Status           domain.OrderStatus
	PaymentStatus    string
	PaymentMethod    string
	SubtotalCents    int64
	DeliveryFeeCents int64
	DiscountCents    int64
	TotalCents       int64
	ShippingAddress  string
	ShippingLat      float64
	ShippingLng      float64
	StoreOrders      []StoreOrderInput
}

// StoreOrderInput is one store's share of the order.
type StoreOrderInput struct {
	StoreID          string
	SubtotalCents    int64
	DeliveryFeeCents int64
	Items            []domain.CartItem
}

// Repository persists and reads customer-order aggregates.
type Repository interface {
	// Create writes the customer order, its sub-orders, their line items
	// and the initial status-history entry in a single transaction. A
	// failure at any point leaves no rows behind.
	Create(ctx context.Context, in CreateInput) (*domain.CustomerOrder, error)
	GetByID(ctx context.Context, id string) (*domain.CustomerOrder, error)
	GetByCode(ctx context.Context, code string) (*domain.CustomerOrder, error)
}
