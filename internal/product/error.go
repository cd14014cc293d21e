package product

import "cakestore-be/internal/apperr"

var (
	ErrNotFound          = apperr.New(apperr.NotFound, "product not found")
	ErrInsufficientStock = apperr.New(apperr.Validation, "insufficient stock")
)
