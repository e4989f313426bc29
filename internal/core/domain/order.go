package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// CheckoutItem is the minimal line form the checkout process consumes.
type CheckoutItem struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"qty"`
	VariantKey string `json:"size,omitempty"`
}

// Order is the priced snapshot persisted when a checkout session is created.
// Totals are frozen at creation; a later offer change does not reprice it.
type Order struct {
	ID            string
	CartID        string
	Email         string
	Items         []OrderItem
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	OfferID       string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ProductID      string
	VariantKey     string
	Name           string
	UnitPriceCents int64
	Quantity       int
}
