package store

import (
	"context"

	"nearmart/internal/domain"
)

// Repository provides read access to stores.
type Repository interface {
	// FindIDsWithinRadius returns ids of active stores whose location lies
	// within radiusKm of the given point.
	FindIDsWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]string, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
}
