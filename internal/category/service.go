package category

import (
	"context"
	"strings"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	Add(ctx context.Context, name string, description *string) (*Category, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Add(ctx context.Context, name string, description *string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)

	if strings.TrimSpace(name) == "" {
		return nil, apperr.New(apperr.Validation, "category name cannot be empty")
	}

	category, err := s.repo.Add(ctx, name, description)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.Uint("category_id", category.ID))
	return category, nil
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Category, error) {
	if params.Name != nil && strings.TrimSpace(*params.Name) == "" {
		return nil, apperr.New(apperr.Validation, "category name cannot be empty")
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
