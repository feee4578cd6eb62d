package sequence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Next increments and returns the counter for key in one statement. The
// upsert takes a row lock on the counter row, so concurrent callers are
// serialized by the database and never observe the same value.
func (r *postgresRepo) Next(ctx context.Context, key string) (int64, error) {
	const q = `
INSERT INTO order_sequences (prefix, value)
VALUES ($1, 1)
ON CONFLICT (prefix) DO UPDATE SET value = order_sequences.value + 1
RETURNING value
`
	var value int64
	if err := r.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}
