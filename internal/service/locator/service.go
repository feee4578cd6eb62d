// Package locator finds candidate stores around a delivery point.
package locator

import (
	"context"

	"go.uber.org/zap"
)

type storeRepo interface {
	FindIDsWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]string, error)
}

type Service struct {
	repo            storeRepo
	defaultRadiusKm float64
	logger          *zap.Logger
}

func New(repo storeRepo, defaultRadiusKm float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, defaultRadiusKm: defaultRadiusKm, logger: logger}
}

// NearbyStoreIDs returns active store ids within radiusKm of the point,
// falling back to the configured default when radiusKm is not positive.
// Backend failures degrade to an empty result: callers treat "no candidates"
// and "lookup failed" the same way, and the failure is only logged here.
func (s *Service) NearbyStoreIDs(ctx context.Context, lat, lng, radiusKm float64) []string {
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}
	ids, err := s.repo.FindIDsWithinRadius(ctx, lat, lng, radiusKm)
	if err != nil {
		s.logger.Warn("store lookup failed, treating as no candidates",
			zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Float64("radius_km", radiusKm), zap.Error(err))
		return nil
	}
	return ids
}
