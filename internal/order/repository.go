package order

import (
	"context"
	"database/sql"
	"errors"

	"cakestore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	InsertOrder(ctx context.Context, o *Order) (uint, error)
	InsertOrderItems(ctx context.Context, orderID uint, items []OrderItem) error
	DeleteOrder(ctx context.Context, orderID uint) error
	GetByID(ctx context.Context, orderID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context, limit, offset int32) ([]*Order, error)
	MarkPaid(ctx context.Context, orderID uint) error
	MarkDelivered(ctx context.Context, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.user_id, o.payment_method,
	o.items_price, o.tax_price, o.shipping_price, o.total_price,
	o.is_paid, o.paid_at, o.is_delivered, o.delivered_at,
	o.shipping_address, o.shipping_city, o.shipping_postal_code, o.shipping_country,
	o.created_at, o.updated_at
`

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.PaymentMethod,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingPostalCode, &o.ShippingCountry,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) InsertOrder(ctx context.Context, o *Order) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertOrder"),
		zap.Uint("user_id", o.UserID),
	)

	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, payment_method,
			items_price, tax_price, shipping_price, total_price,
			is_paid, is_delivered,
			shipping_address, shipping_city, shipping_postal_code, shipping_country
		) VALUES ($1,$2,$3,$4,$5,$6,false,false,$7,$8,$9,$10)
		RETURNING id
	`,
		o.UserID, o.PaymentMethod,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice,
		o.ShippingAddress, o.ShippingCity, o.ShippingPostalCode, o.ShippingCountry,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	log.Debug("order inserted", zap.Uint("order_id", id))
	return id, nil
}

func (r *repository) InsertOrderItems(ctx context.Context, orderID uint, items []OrderItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertOrderItems"),
		zap.Uint("order_id", orderID),
		zap.Int("item_count", len(items)),
	)

	for i, item := range items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, qty, image, price)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, orderID, item.ProductID, item.Name, item.Qty, item.Image, item.Price)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	log.Debug("all order items inserted")
	return nil
}

func (r *repository) DeleteOrder(ctx context.Context, orderID uint) error {
	// Compensating delete for a half-created order. Items first so the
	// statement order works with or without ON DELETE CASCADE.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	return err
}

func (r *repository) GetByID(ctx context.Context, orderID uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.id = $1
	`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.name, oi.qty, oi.image, oi.price
		FROM order_items oi
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Qty, &item.Image, &item.Price); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return o, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) ListAll(ctx context.Context, limit, offset int32) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) MarkPaid(ctx context.Context, orderID uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = true, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, orderID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) MarkDelivered(ctx context.Context, orderID uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET is_delivered = true, delivered_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, orderID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
