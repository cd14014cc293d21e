package transport

import (
	"net/http"

	"cakestore-be/internal/category"
	"cakestore-be/internal/httpx"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetCategories(r.Context(),
		queryStringPtr(r, "filter"),
		queryInt32Ptr(r, "limit"),
		queryInt32Ptr(r, "page"),
	)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, c)
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.categories.Add(r.Context(), req.Name, req.Description)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.Created(w, c)
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req updateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.categories.Update(r.Context(), id, category.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, map[string]string{"message": "category deleted"})
}
