package port

import (
	"context"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

// CartStorage is the durable slot one cart persists its line list to. Hosts
// without durable storage plug in a no-op implementation.
type CartStorage interface {
	// Load returns the stored line list. ok is false when no usable
	// snapshot exists: the slot is empty, not JSON, or not a JSON array.
	Load(ctx context.Context) (lines []domain.CartLine, ok bool, err error)

	// Save overwrites the slot with the full line list.
	Save(ctx context.Context, lines []domain.CartLine) error
}
