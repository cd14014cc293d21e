package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/metrics"
	"cakestore-be/internal/money"
	"cakestore-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, userID uint, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error)
	MyOrders(ctx context.Context, userID uint) ([]*Order, error)
	ListOrders(ctx context.Context, limit, page int32) ([]*Order, error)
	MarkPaid(ctx context.Context, orderID uint) error
	MarkDelivered(ctx context.Context, orderID uint) error
}

type service struct {
	repo     Repository
	products product.Repository
	pricing  Pricing
}

func NewService(repo Repository, products product.Repository, pricing Pricing) Service {
	return &service{repo: repo, products: products, pricing: pricing}
}

// PlaceOrder assembles an order from authoritative product rows. Client
// prices are never trusted: each line is repriced from the store, the
// whole order is rejected before any write if a line is short on stock,
// and a failed item insert deletes the half-created order. The stock
// decrement afterwards is best-effort and never rolls the order back.
func (s *service) PlaceOrder(ctx context.Context, userID uint, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(input.Items)),
	)

	if err := validateInput(input); err != nil {
		log.Warn("order input rejected", zap.Error(err))
		return nil, err
	}

	// 1. Re-fetch every product; reject on missing rows or short stock
	// before anything is written.
	items := make([]OrderItem, 0, len(input.Items))
	var itemsPrice int64

	for _, in := range input.Items {
		p, err := s.products.GetByID(ctx, in.ProductID, true)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return nil, apperr.Newf(apperr.NotFound, "product %d not found", in.ProductID)
			}
			log.Error("failed to fetch product", zap.Uint("product_id", in.ProductID), zap.Error(err))
			return nil, err
		}

		if in.Qty > p.CountInStock {
			return nil, apperr.Newf(apperr.Validation,
				"insufficient stock for product %d: requested %d, available %d",
				p.ID, in.Qty, p.CountInStock)
		}

		lineTotal := p.Price * int64(in.Qty)
		itemsPrice += lineTotal

		items = append(items, OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       in.Qty,
			Image:     p.Image,
			Price:     p.Price,
		})
	}

	// 2. Derive tax and shipping. Tax is the only place a fractional
	// value can appear; it is rounded to whole dong exactly once.
	taxPrice := money.ToVND(float64(itemsPrice) * s.pricing.TaxRate)

	shippingPrice := s.pricing.ShippingFlatPrice
	if s.pricing.EnableFreeShipping && itemsPrice >= s.pricing.FreeShippingThreshold {
		shippingPrice = 0
	}

	totalPrice := itemsPrice + taxPrice + shippingPrice

	log.Info("order priced",
		zap.Int64("items_price", itemsPrice),
		zap.Int64("tax_price", taxPrice),
		zap.Int64("shipping_price", shippingPrice),
		zap.Int64("total_price", totalPrice),
	)

	o := &Order{
		UserID:             userID,
		PaymentMethod:      input.PaymentMethod,
		ItemsPrice:         itemsPrice,
		TaxPrice:           taxPrice,
		ShippingPrice:      shippingPrice,
		TotalPrice:         totalPrice,
		ShippingAddress:    input.ShippingAddress,
		ShippingCity:       input.ShippingCity,
		ShippingPostalCode: input.ShippingPostalCode,
		ShippingCountry:    input.ShippingCountry,
	}

	// 3. Persist order, then items; compensate on item failure so no
	// partial order survives.
	orderID, err := s.repo.InsertOrder(ctx, o)
	if err != nil {
		return nil, apperr.Wrap(apperr.Datastore, "failed to create order", err)
	}

	if err := s.repo.InsertOrderItems(ctx, orderID, items); err != nil {
		log.Error("order item insert failed, deleting order",
			zap.Uint("order_id", orderID), zap.Error(err))
		if delErr := s.repo.DeleteOrder(ctx, orderID); delErr != nil {
			log.Error("compensating order delete failed",
				zap.Uint("order_id", orderID), zap.Error(delErr))
		}
		return nil, apperr.Wrap(apperr.Datastore, "failed to create order items", err)
	}

	// 4. Decrement stock per line. Failures are logged and counted, not
	// surfaced: the order already exists and drift is reconciled
	// out-of-band.
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
			metrics.StockDecrementFailures.Inc()
			log.Error("stock decrement failed",
				zap.Uint("order_id", orderID),
				zap.Uint("product_id", item.ProductID),
				zap.Int("qty", item.Qty),
				zap.Error(err),
			)
		}
	}

	metrics.OrdersCreated.Inc()

	// 5. Re-read so the response carries generated ids and timestamps.
	created, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Info("order created", zap.Uint("order_id", orderID))
	return created, nil
}

func validateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.ProductID == 0 {
			return apperr.New(apperr.Validation, "product_id is required for every item")
		}
		if item.Qty < 1 {
			return apperr.Newf(apperr.Validation, "qty must be at least 1 for product %d", item.ProductID)
		}
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return apperr.New(apperr.Validation, "payment_method is required")
	}
	missing := []string{}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		missing = append(missing, "shipping_address")
	}
	if strings.TrimSpace(input.ShippingCity) == "" {
		missing = append(missing, "shipping_city")
	}
	if strings.TrimSpace(input.ShippingPostalCode) == "" {
		missing = append(missing, "shipping_postal_code")
	}
	if strings.TrimSpace(input.ShippingCountry) == "" {
		missing = append(missing, "shipping_country")
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.Validation, "missing shipping fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) MyOrders(ctx context.Context, userID uint) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) ListOrders(ctx context.Context, limit, page int32) ([]*Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	orders, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) MarkPaid(ctx context.Context, orderID uint) error {
	if err := s.repo.MarkPaid(ctx, orderID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info(fmt.Sprintf("order %d marked as paid", orderID))
	return nil
}

func (s *service) MarkDelivered(ctx context.Context, orderID uint) error {
	if err := s.repo.MarkDelivered(ctx, orderID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info(fmt.Sprintf("order %d marked as delivered", orderID))
	return nil
}
