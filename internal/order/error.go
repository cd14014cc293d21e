package order

import "cakestore-be/internal/apperr"

var (
	ErrOrderNotFound = apperr.New(apperr.NotFound, "order not found")
	ErrForbidden     = apperr.New(apperr.Forbidden, "cannot access others' orders")
	ErrEmptyOrder    = apperr.New(apperr.Validation, "order must contain at least one item")
)
