package review

import (
	"context"
	"database/sql"
	"errors"

	"cakestore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ListByProduct(ctx context.Context, productID uint) ([]*Review, error)
	GetByID(ctx context.Context, id uint) (*Review, error)
	Insert(ctx context.Context, rv *Review) (*Review, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*Review, error)
	Delete(ctx context.Context, id uint) error
	RatingsForProduct(ctx context.Context, productID uint) ([]float64, error)
	HasPaidPurchase(ctx context.Context, userID, productID uint) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByProduct(ctx context.Context, productID uint) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, user_id, name, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, name, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, id).Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) Insert(ctx context.Context, rv *Review) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertReview"),
		zap.Uint("product_id", rv.ProductID),
		zap.Uint("user_id", rv.UserID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, name, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rv.ProductID, rv.UserID, rv.Name, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		// One review per (product, user); the unique constraint is the
		// source of truth for duplicates.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateReview
		}
		log.Error("failed to insert review", zap.Error(err))
		return nil, err
	}

	log.Info("review inserted", zap.Uint("review_id", rv.ID))
	return rv, nil
}

func (r *repository) Update(ctx context.Context, id uint, input UpdateInput) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		UPDATE reviews
		SET rating     = COALESCE($1, rating),
		    comment    = COALESCE($2, comment),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, product_id, user_id, name, rating, comment, created_at, updated_at
	`, input.Rating, input.Comment, id).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) RatingsForProduct(ctx context.Context, productID uint) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rating FROM reviews WHERE product_id = $1
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []float64
	for rows.Next() {
		var rating float64
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// HasPaidPurchase reports whether the user has at least one paid order
// containing the product, the gating condition for writing a review.
func (r *repository) HasPaidPurchase(ctx context.Context, userID, productID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1
			  AND o.is_paid = true
			  AND oi.product_id = $2
		)
	`, userID, productID).Scan(&exists)
	return exists, err
}
