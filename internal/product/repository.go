package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cakestore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	HasOrderReferences(ctx context.Context, id uint) (bool, error)
	SoftDelete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	DecrementStock(ctx context.Context, id uint, qty int) error
	UpdateRating(ctx context.Context, id uint, rating float64, numReviews int) error
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

func scanProduct(row interface{ Scan(dest ...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Image,
		&p.Price, &p.CountInStock, &p.CategoryID, &p.CategoryName,
		&p.Rating, &p.NumReviews, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`
	if onlyActive {
		query += " AND p.is_active = true"
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	if !filter.IncludeInactive {
		query += " AND p.is_active = true"
	} else if filter.IsActive != nil {
		query += fmt.Sprintf(" AND p.is_active = $%d", argIndex)
		args = append(args, *filter.IsActive)
		argIndex++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND p.category_id = $%d", argIndex)
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.Brand != nil && *filter.Brand != "" {
		query += fmt.Sprintf(" AND p.brand = $%d", argIndex)
		args = append(args, *filter.Brand)
		argIndex++
	}

	if filter.Search != nil && *filter.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND p.price >= $%d", argIndex)
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND p.price <= $%d", argIndex)
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	// ---------- SORTING ----------
	sortBy := "p.created_at"
	switch filter.SortBy {
	case "price":
		sortBy = "p.price"
	case "rating":
		sortBy = "p.rating"
	case "name":
		sortBy = "p.name"
	}

	dir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		dir = "ASC"
	}

	query += " ORDER BY " + sortBy + " " + dir

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	query := `
		INSERT INTO products (name, description, brand, image, price, count_in_stock, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id
	`

	var id uint
	err := r.db.QueryRowContext(ctx, query,
		params.Name, params.Description, params.Brand, params.Image,
		params.Price, params.CountInStock, params.CategoryID,
	).Scan(&id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	return r.GetByID(ctx, id, false)
}

func (r *repository) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name           = COALESCE($1, name),
		    description    = COALESCE($2, description),
		    brand          = COALESCE($3, brand),
		    image          = COALESCE($4, image),
		    price          = COALESCE($5, price),
		    count_in_stock = COALESCE($6, count_in_stock),
		    category_id    = COALESCE($7, category_id),
		    is_active      = COALESCE($8, is_active),
		    updated_at     = NOW()
		WHERE id = $9
	`,
		params.Name, params.Description, params.Brand, params.Image,
		params.Price, params.CountInStock, params.CategoryID, params.IsActive, id,
	)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id, false)
}

func (r *repository) HasOrderReferences(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *repository) SoftDelete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) HardDelete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock applies a guarded decrement; the WHERE clause keeps
// count_in_stock from ever going negative under concurrent orders. A lost
// race reports ErrInsufficientStock instead of writing a negative value.
func (r *repository) DecrementStock(ctx context.Context, id uint, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET count_in_stock = count_in_stock - $1, updated_at = NOW()
		WHERE id = $2 AND count_in_stock >= $1
	`, qty, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *repository) UpdateRating(ctx context.Context, id uint, rating float64, numReviews int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET rating = $1, num_reviews = $2, updated_at = NOW()
		WHERE id = $3
	`, rating, numReviews, id)
	return err
}
