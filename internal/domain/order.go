package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// CheckoutForm carries the billing, shipping and payment fields the shopper
// fills in at checkout. Totals are computed server-side, never taken from
// the form.
type CheckoutForm struct {
	IdempotencyKey string `json:"idempotency_key,omitempty"`

	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	ZipCode       string `json:"zip_code"`
	PaymentMethod string `json:"payment_method"`
}

// Order is the persisted order document. Created exactly once; immutable
// afterwards in this service.
type Order struct {
	ID             string      `bson:"_id"`
	IdempotencyKey string      `bson:"idempotency_key,omitempty"`
	Name           string      `bson:"name"`
	Email          string      `bson:"email"`
	Phone          string      `bson:"phone"`
	Address        string      `bson:"address"`
	City           string      `bson:"city"`
	Country        string      `bson:"country"`
	ZipCode        string      `bson:"zip_code"`
	PaymentMethod  string      `bson:"payment_method"`
	Items          []CartItem  `bson:"items"`
	Subtotal       float64     `bson:"subtotal"`
	Shipping       float64     `bson:"shipping"`
	Taxes          float64     `bson:"taxes"`
	Total          float64     `bson:"total"`
	Status         OrderStatus `bson:"status"`
	CreatedAt      time.Time   `bson:"created_at"`
}
