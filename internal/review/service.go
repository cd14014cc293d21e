package review

import (
	"context"
	"math"
	"strings"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/metrics"
	"cakestore-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	ListByProduct(ctx context.Context, productID uint) ([]*Review, error)
	Create(ctx context.Context, userID uint, userName string, input CreateInput) (*Review, error)
	Update(ctx context.Context, userID, reviewID uint, isAdmin bool, input UpdateInput) (*Review, error)
	Delete(ctx context.Context, userID, reviewID uint, isAdmin bool) error
	RecomputeRating(ctx context.Context, productID uint) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) ListByProduct(ctx context.Context, productID uint) ([]*Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	return reviews, nil
}

// Create writes a review for a product the user has verifiably bought.
// The rating recompute afterwards is best-effort: the review row is the
// primary effect and a stale aggregate is acceptable transient state.
func (s *service) Create(ctx context.Context, userID uint, userName string, input CreateInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.Uint("product_id", input.ProductID),
		zap.Uint("user_id", userID),
	)

	if input.ProductID == 0 {
		return nil, apperr.New(apperr.Validation, "product_id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = userName
	}
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}

	purchased, err := s.repo.HasPaidPurchase(ctx, userID, input.ProductID)
	if err != nil {
		log.Error("failed to verify purchase history", zap.Error(err))
		return nil, apperr.Wrap(apperr.Datastore, "unable to verify purchase history", err)
	}
	if !purchased {
		log.Warn("purchase verification failed")
		return nil, ErrNotPurchased
	}

	rv, err := s.repo.Insert(ctx, &Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Name:      name,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreated.Inc()

	if err := s.RecomputeRating(ctx, input.ProductID); err != nil {
		metrics.RatingRecomputeFailures.Inc()
		log.Error("failed to recompute product rating", zap.Error(err))
	}

	log.Info("review created", zap.Uint("review_id", rv.ID))
	return rv, nil
}

func (s *service) Update(ctx context.Context, userID, reviewID uint, isAdmin bool, input UpdateInput) (*Review, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}

	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && existing.UserID != userID {
		return nil, ErrForbidden
	}

	rv, err := s.repo.Update(ctx, reviewID, input)
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeRating(ctx, rv.ProductID); err != nil {
		metrics.RatingRecomputeFailures.Inc()
		logger.FromCtx(ctx).Error("failed to recompute product rating",
			zap.Uint("product_id", rv.ProductID), zap.Error(err))
	}

	return rv, nil
}

func (s *service) Delete(ctx context.Context, userID, reviewID uint, isAdmin bool) error {
	existing, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && existing.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.RecomputeRating(ctx, existing.ProductID); err != nil {
		metrics.RatingRecomputeFailures.Inc()
		logger.FromCtx(ctx).Error("failed to recompute product rating",
			zap.Uint("product_id", existing.ProductID), zap.Error(err))
	}

	return nil
}

// RecomputeRating rewrites the product's rating and num_reviews from the
// current review set. Safe to invoke redundantly: the result depends
// only on the stored reviews.
func (s *service) RecomputeRating(ctx context.Context, productID uint) error {
	ratings, err := s.repo.RatingsForProduct(ctx, productID)
	if err != nil {
		return err
	}

	numReviews := len(ratings)
	rating := 0.0
	if numReviews > 0 {
		var sum float64
		for _, r := range ratings {
			sum += r
		}
		rating = math.Round(sum/float64(numReviews)*10) / 10
	}

	return s.products.UpdateRating(ctx, productID, rating, numReviews)
}
