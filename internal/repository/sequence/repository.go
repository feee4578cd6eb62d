package sequence

import "context"

// Repository mints monotonically increasing values per key. Next must stay
// correct under concurrent callers sharing a key.
type Repository interface {
	Next(ctx context.Context, key string) (int64, error)
}
