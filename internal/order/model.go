package order

import "time"

type Order struct {
	ID                 uint        `json:"id"`
	UserID             uint        `json:"user_id"`
	PaymentMethod      string      `json:"payment_method"`
	ItemsPrice         int64       `json:"items_price"`
	TaxPrice           int64       `json:"tax_price"`
	ShippingPrice      int64       `json:"shipping_price"`
	TotalPrice         int64       `json:"total_price"`
	IsPaid             bool        `json:"is_paid"`
	PaidAt             *time.Time  `json:"paid_at,omitempty"`
	IsDelivered        bool        `json:"is_delivered"`
	DeliveredAt        *time.Time  `json:"delivered_at,omitempty"`
	ShippingAddress    string      `json:"shipping_address"`
	ShippingCity       string      `json:"shipping_city"`
	ShippingPostalCode string      `json:"shipping_postal_code"`
	ShippingCountry    string      `json:"shipping_country"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	Items              []OrderItem `json:"items"`
}

// OrderItem snapshots name, image and unit price at purchase time; the
// snapshot never changes even if the product row does.
type OrderItem struct {
	ID        uint    `json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Image     *string `json:"image,omitempty"`
	Price     int64   `json:"price"`
}

type CreateOrderItemInput struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"qty"`
}

type CreateOrderInput struct {
	Items              []CreateOrderItemInput `json:"order_items"`
	PaymentMethod      string                 `json:"payment_method"`
	ShippingAddress    string                 `json:"shipping_address"`
	ShippingCity       string                 `json:"shipping_city"`
	ShippingPostalCode string                 `json:"shipping_postal_code"`
	ShippingCountry    string                 `json:"shipping_country"`
}

// Pricing carries the configured knobs the assembler derives tax and
// shipping from. All amounts are integer VND.
type Pricing struct {
	TaxRate               float64
	ShippingFlatPrice     int64
	FreeShippingThreshold int64
	EnableFreeShipping    bool
}
