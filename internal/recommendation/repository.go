package recommendation

import (
	"context"
	"database/sql"
	"errors"

	"cakestore-be/internal/logger"
	"cakestore-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	TopSelling(ctx context.Context, limit int) ([]*product.Product, error)
	TopRated(ctx context.Context, limit int, excludeIDs []uint) ([]*product.Product, error)
	TopRatedInCategory(ctx context.Context, categoryID uint, limit int, excludeIDs []uint) ([]*product.Product, error)
	MostPurchasedCategory(ctx context.Context, userID uint) (*uint, error)
	PurchasedProductIDs(ctx context.Context, userID uint) ([]uint, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.brand, p.image,
	p.price, p.count_in_stock, p.category_id, c.name,
	p.rating, p.num_reviews, p.is_active, p.created_at, p.updated_at
`

func collectProducts(rows *sql.Rows) ([]*product.Product, error) {
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Brand, &p.Image,
			&p.Price, &p.CountInStock, &p.CategoryID, &p.CategoryName,
			&p.Rating, &p.NumReviews, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// TopSelling ranks sellable products by total quantity across paid orders.
// Unpaid orders do not count toward the ranking.
func (r *repository) TopSelling(ctx context.Context, limit int) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		JOIN (
			SELECT oi.product_id, SUM(oi.qty) AS sold
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.is_paid = true
			GROUP BY oi.product_id
		) s ON s.product_id = p.id
		WHERE p.is_active = true AND p.count_in_stock > 0
		ORDER BY s.sold DESC, p.rating DESC
		LIMIT $1
	`, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query top-selling products", zap.Error(err))
		return nil, err
	}
	return collectProducts(rows)
}

func (r *repository) TopRated(ctx context.Context, limit int, excludeIDs []uint) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = true
		  AND p.count_in_stock > 0
		  AND NOT (p.id = ANY($2))
		ORDER BY p.rating DESC, p.num_reviews DESC
		LIMIT $1
	`, limit, pq.Array(excludeIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query top-rated products", zap.Error(err))
		return nil, err
	}
	return collectProducts(rows)
}

func (r *repository) TopRatedInCategory(ctx context.Context, categoryID uint, limit int, excludeIDs []uint) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		  AND p.is_active = true
		  AND p.count_in_stock > 0
		  AND NOT (p.id = ANY($3))
		ORDER BY p.rating DESC, p.num_reviews DESC
		LIMIT $2
	`, categoryID, limit, pq.Array(excludeIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query category products",
			zap.Uint("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	return collectProducts(rows)
}

// MostPurchasedCategory returns the category the user has bought the most
// of, by summed quantity over paid orders. Nil when the user has no paid
// purchases in any category.
func (r *repository) MostPurchasedCategory(ctx context.Context, userID uint) (*uint, error) {
	var categoryID uint
	err := r.db.QueryRowContext(ctx, `
		SELECT p.category_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = $1
		  AND o.is_paid = true
		  AND p.category_id IS NOT NULL
		GROUP BY p.category_id
		ORDER BY SUM(oi.qty) DESC
		LIMIT 1
	`, userID).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &categoryID, nil
}

func (r *repository) PurchasedProductIDs(ctx context.Context, userID uint) ([]uint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT oi.product_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = $1 AND o.is_paid = true
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
