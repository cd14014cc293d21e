package product

import (
	"context"
	"strings"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetByID(ctx context.Context, id uint, isAdmin bool) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uint) (*DeleteResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetByID hides inactive products from non-admin callers.
func (s *service) GetByID(ctx context.Context, id uint, isAdmin bool) (*Product, error) {
	return s.repo.GetByID(ctx, id, !isAdmin)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return products, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperr.New(apperr.Validation, "product name is required")
	}
	if params.Price < 0 {
		return nil, apperr.New(apperr.Validation, "price cannot be negative")
	}
	if params.CountInStock < 0 {
		return nil, apperr.New(apperr.Validation, "count_in_stock cannot be negative")
	}
	return s.repo.Create(ctx, params)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, apperr.New(apperr.Validation, "product name cannot be empty")
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, apperr.New(apperr.Validation, "price cannot be negative")
	}
	if params.CountInStock != nil && *params.CountInStock < 0 {
		return nil, apperr.New(apperr.Validation, "count_in_stock cannot be negative")
	}
	return s.repo.Update(ctx, id, params)
}

// Delete hard-deletes a product unless it is referenced by any order line,
// in which case the row is kept and deactivated so order history stays
// readable.
func (s *service) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.Uint("product_id", id),
	)

	referenced, err := s.repo.HasOrderReferences(ctx, id)
	if err != nil {
		log.Error("failed to check order references", zap.Error(err))
		return nil, err
	}

	if referenced {
		if err := s.repo.SoftDelete(ctx, id); err != nil {
			return nil, err
		}
		log.Info("product deactivated (has existing orders)")
		return &DeleteResult{
			Deleted:     false,
			SoftDeleted: true,
			Message:     "Product deactivated (has existing orders)",
		}, nil
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return nil, err
	}
	log.Info("product permanently deleted")
	return &DeleteResult{
		Deleted:     true,
		SoftDeleted: false,
		Message:     "Product permanently deleted",
	}, nil
}
