package recommendation

import (
	"context"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/product"

	"go.uber.org/zap"
)

const (
	DefaultLimit = 6
	MaxLimit     = 20
)

type Service interface {
	Recommend(ctx context.Context, userID *uint, limit *int) ([]*product.Product, error)
	TopSelling(ctx context.Context, limit *int) ([]*product.Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// normalizeLimit applies the default for an absent limit; any supplied
// value outside 1..MaxLimit, zero included, is a caller error.
func normalizeLimit(limit *int) (int, error) {
	if limit == nil {
		return DefaultLimit, nil
	}
	if *limit < 1 || *limit > MaxLimit {
		return 0, apperr.Newf(apperr.Validation, "limit must be between 1 and %d", MaxLimit)
	}
	return *limit, nil
}

// Recommend picks up to limit sellable products. With a user it prefers
// unbought products from the user's most-purchased category; without one
// it ranks by paid sales. Both paths pad from the broader catalog so the
// response stays full even for thin histories.
func (s *service) Recommend(ctx context.Context, userID *uint, limit *int) ([]*product.Product, error) {
	n, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	if userID == nil {
		return s.anonymous(ctx, n)
	}
	return s.personalized(ctx, *userID, n)
}

func (s *service) TopSelling(ctx context.Context, limit *int) ([]*product.Product, error) {
	n, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.TopSelling(ctx, n)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*product.Product{}
	}
	return products, nil
}

func (s *service) anonymous(ctx context.Context, limit int) ([]*product.Product, error) {
	products, err := s.repo.TopSelling(ctx, limit)
	if err != nil {
		return nil, err
	}

	if len(products) < limit {
		padded, err := s.repo.TopRated(ctx, limit-len(products), idsOf(products))
		if err != nil {
			return nil, err
		}
		products = append(products, padded...)
	}

	if products == nil {
		products = []*product.Product{}
	}
	return products, nil
}

func (s *service) personalized(ctx context.Context, userID uint, limit int) ([]*product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Recommend"),
		zap.Uint("user_id", userID),
	)

	categoryID, err := s.repo.MostPurchasedCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if categoryID == nil {
		// No paid purchase history to personalize on.
		log.Debug("no purchase history, serving top sellers")
		return s.anonymous(ctx, limit)
	}

	purchased, err := s.repo.PurchasedProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.TopRatedInCategory(ctx, *categoryID, limit, purchased)
	if err != nil {
		return nil, err
	}

	if len(products) < limit {
		fallback, err := s.anonymous(ctx, limit)
		if err != nil {
			return nil, err
		}
		products = mergeDedupe(products, fallback, limit)
	}

	if products == nil {
		products = []*product.Product{}
	}
	return products, nil
}

func idsOf(products []*product.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func mergeDedupe(base, extra []*product.Product, limit int) []*product.Product {
	seen := make(map[uint]struct{}, len(base))
	for _, p := range base {
		seen[p.ID] = struct{}{}
	}
	for _, p := range extra {
		if len(base) >= limit {
			break
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		base = append(base, p)
	}
	return base
}
