package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/middleware"
	"cakestore-be/internal/user"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	httpx.OK(w, u)
}

type updateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), u.ID, user.UpdateProfileParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := int32(queryInt(r, "limit", 20))
	page := int32(queryInt(r, "page", 1))
	if limit < 1 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	users, err := h.users.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, map[string]string{"message": "user deleted"})
}
