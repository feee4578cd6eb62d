package domain

import "time"

// OrderStatus is the lifecycle state shared by customer orders and their
// per-store sub-orders.
type OrderStatus string

const (
	StatusPendingAtStore OrderStatus = "pending_at_store"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusShipped        OrderStatus = "shipped"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingAtStore, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// The forward chain is pending_at_store, confirmed, shipped, delivered;
// cancelled is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusPendingAtStore:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusShipped
	case StatusShipped:
		return next == StatusDelivered
	}
	return false
}

// CartItem is one requested line of a checkout: a catalog product plus the
// price, name, unit and image the client saw at cart time.
type CartItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	ImageURL       string `json:"imageUrl"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CustomerOrder is the top-level record of one checkout.
type CustomerOrder struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	OrderCode        string          `json:"orderCode"`
	Status           OrderStatus     `json:"status"`
	PaymentStatus    string          `json:"paymentStatus"`
	PaymentMethod    string          `json:"paymentMethod"`
	SubtotalCents    int64           `json:"subtotalCents"`
	DeliveryFeeCents int64           `json:"deliveryFeeCents"`
	DiscountCents    int64           `json:"discountCents"`
	TotalCents       int64           `json:"totalCents"`
	ShippingAddress  string          `json:"shippingAddress"`
	ShippingLat      float64         `json:"shippingLat"`
	ShippingLng      float64         `json:"shippingLng"`
	CreatedAt        time.Time       `json:"createdAt"`
	StoreOrders      []StoreSubOrder `json:"storeOrders,omitempty"`
}

// StoreSubOrder is the portion of a CustomerOrder fulfilled by one store.
type StoreSubOrder struct {
	ID               string          `json:"id"`
	CustomerOrderID  string          `json:"customerOrderId"`
	StoreID          string          `json:"storeId"`
	SubtotalCents    int64           `json:"subtotalCents"`
	DeliveryFeeCents int64           `json:"deliveryFeeCents"`
	Status           OrderStatus     `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	Items            []OrderLineItem `json:"items,omitempty"`
}

// OrderLineItem is one product line within a StoreSubOrder. ProductID points
// at the store-scoped inventory row, not the catalog product; name, unit,
// image and price are snapshots taken at order time.
type OrderLineItem struct {
	ID             string `json:"id"`
	StoreOrderID   string `json:"storeOrderId"`
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	ImageURL       string `json:"imageUrl"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// StatusChange is one entry of an order's status history.
type StatusChange struct {
	ID              string      `json:"id"`
	CustomerOrderID string      `json:"customerOrderId"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}
