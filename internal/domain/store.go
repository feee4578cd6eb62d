package domain

import "time"

// Store is a physical retailer. The order core only reads id, location and
// the activity flag.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Availability records that a store carries a catalog product, identified by
// the store-scoped inventory row.
type Availability struct {
	StoreID     string
	ProductID   string
	InventoryID string
}
