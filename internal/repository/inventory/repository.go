package inventory

import (
	"context"

	"nearmart/internal/domain"
)

// Repository answers which stores carry which catalog products.
type Repository interface {
	// FindAvailability returns the active (store, product) pairs for the
	// given id sets, with the store-scoped inventory row id per pair.
	// Either set being empty yields an empty result.
	FindAvailability(ctx context.Context, storeIDs, productIDs []string) ([]domain.Availability, error)
}
