// Package transport wires the HTTP surface: a chi router under /api with
// the shared JSON envelope, auth guards, and per-domain handlers.
package transport

import (
	"net/http"

	"cakestore-be/internal/category"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/middleware"
	"cakestore-be/internal/order"
	"cakestore-be/internal/product"
	"cakestore-be/internal/recommendation"
	"cakestore-be/internal/review"
	"cakestore-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	users           user.Service
	userRepo        user.Repository
	categories      category.Service
	products        product.Service
	orders          order.Service
	reviews         review.Service
	recommendations recommendation.Service
}

func NewHandler(
	users user.Service,
	userRepo user.Repository,
	categories category.Service,
	products product.Service,
	orders order.Service,
	reviews review.Service,
	recommendations recommendation.Service,
) *Handler {
	return &Handler{
		users:           users,
		userRepo:        userRepo,
		categories:      categories,
		products:        products,
		orders:          orders,
		reviews:         reviews,
		recommendations: recommendations,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	// OptionalAuth must run before RateLimit so authenticated callers
	// are throttled per user rather than per shared IP.
	r.Use(middleware.OptionalAuth(h.userRepo))
	r.Use(middleware.RateLimit)

	protect := middleware.Protect(h.userRepo)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(protect)
				r.Get("/me", h.Me)
				r.Put("/me", h.UpdateMe)
			})
			r.Group(func(r chi.Router) {
				r.Use(protect, middleware.AdminOnly)
				r.Get("/", h.ListUsers)
				r.Get("/{id}", h.GetUser)
				r.Delete("/{id}", h.DeleteUser)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{id}", h.GetCategory)
			r.Group(func(r chi.Router) {
				r.Use(protect, middleware.AdminOnly)
				r.Post("/", h.CreateCategory)
				r.Put("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{id}", h.GetProduct)
			r.Get("/{id}/reviews", h.ListProductReviews)
			r.Group(func(r chi.Router) {
				r.Use(protect, middleware.AdminOnly)
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(protect)
				r.Post("/", h.PlaceOrder)
				r.Get("/my", h.MyOrders)
				r.Get("/{id}", h.GetOrder)
				r.Put("/{id}/pay", h.PayOrder)
			})
			r.Group(func(r chi.Router) {
				r.Use(protect, middleware.AdminOnly)
				r.Get("/", h.ListOrders)
				r.Put("/{id}/deliver", h.DeliverOrder)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(protect)
			r.Post("/", h.CreateReview)
			r.Put("/{id}", h.UpdateReview)
			r.Delete("/{id}", h.DeleteReview)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", h.Recommendations)
			r.Get("/top-selling", h.TopSelling)
			r.Group(func(r chi.Router) {
				r.Use(protect)
				r.Get("/personalized", h.PersonalizedRecommendations)
			})
		})
	})

	return r
}
