package port

import (
	"context"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

// OfferRepository looks up the flash offer that is live right now.
type OfferRepository interface {
	// ActiveOffer returns nil when no offer is live.
	ActiveOffer(ctx context.Context) (*domain.FlashOffer, error)
}
