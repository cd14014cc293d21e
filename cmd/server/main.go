package main

import (
	"net/http"

	"cakestore-be/internal/category"
	"cakestore-be/internal/config"
	"cakestore-be/internal/db"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/order"
	"cakestore-be/internal/product"
	"cakestore-be/internal/recommendation"
	"cakestore-be/internal/review"
	"cakestore-be/internal/transport"
	"cakestore-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, order.Pricing{
		TaxRate:               cfg.TaxRate,
		ShippingFlatPrice:     cfg.ShippingFlatPrice,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		EnableFreeShipping:    cfg.EnableFreeShipping,
	})

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo, productRepo)

	recRepo := recommendation.NewRepository(database)
	recSvc := recommendation.NewService(recRepo)

	handler := transport.NewHandler(
		userSvc, userRepo, categorySvc, productSvc, orderSvc, reviewSvc, recSvc,
	)

	addr := ":" + cfg.AppPort
	logger.L().Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler.Router()); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
