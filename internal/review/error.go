package review

import "cakestore-be/internal/apperr"

var (
	ErrNotFound        = apperr.New(apperr.NotFound, "review not found")
	ErrNotPurchased    = apperr.New(apperr.Validation, "you can only review products you have purchased")
	ErrDuplicateReview = apperr.New(apperr.Conflict, "you have already reviewed this product")
	ErrForbidden       = apperr.New(apperr.Forbidden, "cannot modify others' reviews")
)
