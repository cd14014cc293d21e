package transport

import (
	"net/http"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/middleware"
	"cakestore-be/internal/product"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.CurrentUser(r.Context())
	isAdmin := u != nil && u.IsAdmin

	filter := product.ListFilter{
		CategoryID:      queryUintPtr(r, "category_id"),
		Brand:           queryStringPtr(r, "brand"),
		Search:          queryStringPtr(r, "search"),
		MinPrice:        queryInt64Ptr(r, "min_price"),
		MaxPrice:        queryInt64Ptr(r, "max_price"),
		SortBy:          r.URL.Query().Get("sort_by"),
		SortOrder:       r.URL.Query().Get("sort_order"),
		IncludeInactive: isAdmin,
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	u, _ := middleware.CurrentUser(r.Context())
	isAdmin := u != nil && u.IsAdmin

	p, err := h.products.GetByID(r.Context(), id, isAdmin)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reviews, err := h.reviews.ListByProduct(r.Context(), id)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, reviews)
}

type createProductRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Image        *string `json:"image,omitempty"`
	Price        int64   `json:"price"`
	CountInStock int     `json:"count_in_stock"`
	CategoryID   *uint   `json:"category_id,omitempty"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.products.Create(r.Context(), product.CreateParams{
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Image:        req.Image,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		CategoryID:   req.CategoryID,
	})
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.Created(w, p)
}

type updateProductRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Image        *string `json:"image,omitempty"`
	Price        *int64  `json:"price,omitempty"`
	CountInStock *int    `json:"count_in_stock,omitempty"`
	CategoryID   *uint   `json:"category_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.products.Update(r.Context(), id, product.UpdateParams{
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Image:        req.Image,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		CategoryID:   req.CategoryID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	result, err := h.products.Delete(r.Context(), id)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, result)
}
