package inventory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"nearmart/internal/domain"
)

// pageSize caps the number of ids sent per query so filter lists stay well
// under any transport limit; pages are merged transparently.
const pageSize = 100

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

func (r *postgresRepo) FindAvailability(ctx context.Context, storeIDs, productIDs []string) ([]domain.Availability, error) {
	if len(storeIDs) == 0 || len(productIDs) == 0 {
		return nil, nil
	}

	var result []domain.Availability
	for _, storePage := range chunk(storeIDs, pageSize) {
		for _, productPage := range chunk(productIDs, pageSize) {
			page, err := r.queryPage(ctx, storePage, productPage)
			if err != nil {
				r.logger.Error("inventory repo: availability query failed",
					zap.Int("stores", len(storePage)), zap.Int("products", len(productPage)), zap.Error(err))
				return nil, err
			}
			result = append(result, page...)
		}
	}
	r.logger.Debug("inventory repo: availability resolved",
		zap.Int("stores", len(storeIDs)), zap.Int("products", len(productIDs)), zap.Int("pairs", len(result)))
	return result, nil
}

func (r *postgresRepo) queryPage(ctx context.Context, storeIDs, productIDs []string) ([]domain.Availability, error) {
	const q = `
SELECT store_id::text, master_product_id::text, id::text
FROM products
WHERE is_active
  AND store_id = ANY($1::uuid[])
  AND master_product_id = ANY($2::uuid[])
ORDER BY store_id, master_product_id
`
	rows, err := r.pool.Query(ctx, q, storeIDs, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var page []domain.Availability
	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.StoreID, &a.ProductID, &a.InventoryID); err != nil {
			return nil, err
		}
		page = append(page, a)
	}
	return page, rows.Err()
}

func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	var pages [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		pages = append(pages, ids[start:end])
	}
	return pages
}
