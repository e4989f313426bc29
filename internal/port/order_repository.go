package port

import (
	"context"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists a new order together with its line items.
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetOrder retrieves an order by id; nil when it does not exist.
	GetOrder(ctx context.Context, id string) (*domain.Order, error)

	// UpdateOrderStatus transitions an existing order.
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
