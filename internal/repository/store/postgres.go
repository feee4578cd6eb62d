package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"nearmart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) FindIDsWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]string, error) {
	// Great-circle distance (haversine, 6371 km earth radius) computed in
	// SQL; least() guards acos against rounding above 1.0.
	const q = `
SELECT id::text
FROM stores
WHERE is_active
  AND 6371 * acos(least(1.0,
        cos(radians($1)) * cos(radians(lat)) * cos(radians(lng) - radians($2))
      + sin(radians($1)) * sin(radians(lat)))) <= $3
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, lat, lng, radiusKm)
	if err != nil {
		r.logger.Error("store repo: radius query failed",
			zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Float64("radius_km", radiusKm), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("store repo: radius query",
		zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Float64("radius_km", radiusKm), zap.Int("count", len(ids)))
	return ids, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `
SELECT id::text, name, lat, lng, is_active, created_at
FROM stores
WHERE id = $1
`
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
