package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/middleware"
)

// Recommendations serves personalized picks when the caller carries a
// valid token and top sellers otherwise. An absent limit falls back to
// the service default; a malformed or out-of-range one is a 400.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryIntPtr(r, "limit")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "limit must be a number")
		return
	}

	var userID *uint
	if u, uok := middleware.CurrentUser(r.Context()); uok {
		userID = &u.ID
	}

	products, err := h.recommendations.Recommend(r.Context(), userID, limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, products)
}

func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, limitOK := queryIntPtr(r, "limit")
	if !limitOK {
		httpx.Error(w, http.StatusBadRequest, "limit must be a number")
		return
	}

	products, err := h.recommendations.Recommend(r.Context(), &u.ID, limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, products)
}

func (h *Handler) TopSelling(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryIntPtr(r, "limit")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "limit must be a number")
		return
	}

	products, err := h.recommendations.TopSelling(r.Context(), limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, products)
}
