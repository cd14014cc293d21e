package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/middleware"
	"cakestore-be/internal/review"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input review.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	rv, err := h.reviews.Create(r.Context(), u.ID, u.Name, input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.Created(w, rv)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, idOK := uintParam(r, "id")
	if !idOK {
		httpx.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var input review.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	rv, err := h.reviews.Update(r.Context(), u.ID, id, u.IsAdmin, input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, rv)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, idOK := uintParam(r, "id")
	if !idOK {
		httpx.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.reviews.Delete(r.Context(), u.ID, id, u.IsAdmin); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, map[string]string{"message": "review deleted"})
}
