package port

import (
	"context"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

// CheckoutSession is what the payment provider hands back for a created
// session: where to send the shopper and the provider's session id.
type CheckoutSession struct {
	URL       string
	SessionID string
}

// PaymentGateway is the opaque create-session interface to the hosted
// payment provider. Capture, refunds and signature checks all live on the
// provider's side; the service only creates sessions and receives paid
// events.
type PaymentGateway interface {
	CreateSession(ctx context.Context, order domain.Order) (CheckoutSession, error)
}
