package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.CustomerOrder, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &domain.PersistenceError{Step: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	order := domain.CustomerOrder{
		ID:               uuid.NewString(),
		CustomerID:       in.CustomerID,
		OrderCode:        in.OrderCode,
		Status:           in.Status,
		PaymentStatus:    in.PaymentStatus,
		PaymentMethod:    in.PaymentMethod,
		SubtotalCents:    in.SubtotalCents,
		DeliveryFeeCents: in.DeliveryFeeCents,
		DiscountCents:    in.DiscountCents,
		TotalCents:       in.TotalCents,
		ShippingAddress:  in.ShippingAddress,
		ShippingLat:      in.ShippingLat,
		ShippingLng:      in.ShippingLng,
	}

	err = tx.QueryRow(ctx, `
INSERT INTO customer_orders
    (id, customer_id, order_code, status, payment_status, payment_method,
     subtotal_cents, delivery_fee_cents, discount_cents, total_cents,
     shipping_address, shipping_lat, shipping_lng)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING created_at
`,
		order.ID, order.CustomerID, order.OrderCode, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.SubtotalCents, order.DeliveryFeeCents, order.DiscountCents, order.TotalCents,
		order.ShippingAddress, order.ShippingLat, order.ShippingLng,
	).Scan(&order.CreatedAt)
	if err != nil {
		r.logger.Error("order repo: insert customer order failed", zap.String("order_code", in.OrderCode), zap.Error(err))
		return nil, &domain.PersistenceError{Step: "customer_order", Err: err}
	}

	for _, so := range in.StoreOrders {
		sub := domain.StoreSubOrder{
			ID:               uuid.NewString(),
			CustomerOrderID:  order.ID,
			StoreID:          so.StoreID,
			SubtotalCents:    so.SubtotalCents,
			DeliveryFeeCents: so.DeliveryFeeCents,
			Status:           in.Status,
		}
		err = tx.QueryRow(ctx, `
INSERT INTO store_orders (id, customer_order_id, store_id, subtotal_cents, delivery_fee_cents, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at
`, sub.ID, sub.CustomerOrderID, sub.StoreID, sub.SubtotalCents, sub.DeliveryFeeCents, sub.Status).Scan(&sub.CreatedAt)
		if err != nil {
			r.logger.Error("order repo: insert store order failed",
				zap.String("order_code", in.OrderCode), zap.String("store_id", so.StoreID), zap.Error(err))
			return nil, &domain.PersistenceError{Step: "store_order", Err: err}
		}

		for _, item := range so.Items {
			// Re-resolve the store's inventory row inside the transaction.
			// Allocation saw it moments ago; it can still vanish to a
			// concurrent deactivation, which must fail the whole placement.
			var inventoryID string
			err = tx.QueryRow(ctx, `
SELECT id::text
FROM products
WHERE store_id = $1 AND master_product_id = $2 AND is_active
`, so.StoreID, item.ProductID).Scan(&inventoryID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					r.logger.Warn("order repo: inventory row vanished after allocation",
						zap.String("order_code", in.OrderCode), zap.String("store_id", so.StoreID), zap.String("product_id", item.ProductID))
					return nil, &domain.ProductNotAvailableError{Name: item.Name, StoreID: so.StoreID}
				}
				return nil, &domain.PersistenceError{Step: "resolve_inventory", Err: err}
			}

			line := domain.OrderLineItem{
				ID:             uuid.NewString(),
				StoreOrderID:   sub.ID,
				ProductID:      inventoryID,
				Name:           item.Name,
				Unit:           item.Unit,
				ImageURL:       item.ImageURL,
				UnitPriceCents: item.UnitPriceCents,
				Quantity:       item.Quantity,
			}
			if _, err := tx.Exec(ctx, `
INSERT INTO order_items (id, store_order_id, product_id, name, unit, image_url, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, line.ID, line.StoreOrderID, line.ProductID, line.Name, line.Unit, line.ImageURL, line.UnitPriceCents, line.Quantity); err != nil {
				r.logger.Error("order repo: insert line item failed",
					zap.String("order_code", in.OrderCode), zap.String("store_id", so.StoreID), zap.Error(err))
				return nil, &domain.PersistenceError{Step: "order_item", Err: err}
			}
			sub.Items = append(sub.Items, line)
		}

		order.StoreOrders = append(order.StoreOrders, sub)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO order_status_history (id, customer_order_id, status)
VALUES ($1, $2, $3)
`, uuid.NewString(), order.ID, order.Status); err != nil {
		r.logger.Error("order repo: insert status history failed", zap.String("order_code", in.OrderCode), zap.Error(err))
		return nil, &domain.PersistenceError{Step: "status_history", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.PersistenceError{Step: "commit", Err: err}
	}

	r.logger.Info("order repo: order persisted",
		zap.String("order_id", order.ID), zap.String("order_code", order.OrderCode),
		zap.Int("store_orders", len(order.StoreOrders)))
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CustomerOrder, error) {
	const q = `
SELECT id::text, customer_id::text, order_code, status, payment_status, payment_method,
       subtotal_cents, delivery_fee_cents, discount_cents, total_cents,
       shipping_address, shipping_lat, shipping_lng, created_at
FROM customer_orders
WHERE id = $1
`
	return r.fetchOrder(ctx, q, id)
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.CustomerOrder, error) {
	const q = `
SELECT id::text, customer_id::text, order_code, status, payment_status, payment_method,
       subtotal_cents, delivery_fee_cents, discount_cents, total_cents,
       shipping_address, shipping_lat, shipping_lng, created_at
FROM customer_orders
WHERE order_code = $1
`
	return r.fetchOrder(ctx, q, code)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, orderQuery string, arg interface{}) (*domain.CustomerOrder, error) {
	var o domain.CustomerOrder
	err := r.pool.QueryRow(ctx, orderQuery, arg).Scan(
		&o.ID, &o.CustomerID, &o.OrderCode, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.DiscountCents, &o.TotalCents,
		&o.ShippingAddress, &o.ShippingLat, &o.ShippingLng, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const subQuery = `
SELECT id::text, customer_order_id::text, store_id::text, subtotal_cents, delivery_fee_cents, status, created_at
FROM store_orders
WHERE customer_order_id = $1
ORDER BY store_id
`
	rows, err := r.pool.Query(ctx, subQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sub domain.StoreSubOrder
		if err := rows.Scan(&sub.ID, &sub.CustomerOrderID, &sub.StoreID, &sub.SubtotalCents, &sub.DeliveryFeeCents, &sub.Status, &sub.CreatedAt); err != nil {
			return nil, err
		}
		o.StoreOrders = append(o.StoreOrders, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range o.StoreOrders {
		items, err := r.fetchItems(ctx, o.StoreOrders[i].ID)
		if err != nil {
			return nil, err
		}
		o.StoreOrders[i].Items = items
	}

	return &o, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, storeOrderID string) ([]domain.OrderLineItem, error) {
	const q = `
SELECT id::text, store_order_id::text, product_id::text, name, unit, image_url, unit_price_cents, quantity
FROM order_items
WHERE store_order_id = $1
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, storeOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderLineItem
	for rows.Next() {
		var line domain.OrderLineItem
		if err := rows.Scan(&line.ID, &line.StoreOrderID, &line.ProductID, &line.Name, &line.Unit, &line.ImageURL, &line.UnitPriceCents, &line.Quantity); err != nil {
			return nil, err
		}
		items = append(items, line)
	}
	return items, rows.Err()
}
