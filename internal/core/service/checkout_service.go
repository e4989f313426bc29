package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/core/pricing"
	"github.com/fashionstore/cart-service/internal/port"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// CheckoutService turns a cart into a pending order plus a hosted payment
// session. The provider is opaque: one call out to create a session, one
// paid event back.
type CheckoutService struct {
	orders  port.OrderRepository
	gateway port.PaymentGateway
	offers  *OfferService
	logger  *zap.Logger
	now     func() time.Time
}

func NewCheckoutService(orders port.OrderRepository, gateway port.PaymentGateway, offers *OfferService, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		gateway: gateway,
		offers:  offers,
		logger:  logger,
		now:     time.Now,
	}
}

// BeginCheckout prices the cart with the live flash offer, persists a
// pending order, and asks the provider for a session.
func (s *CheckoutService) BeginCheckout(ctx context.Context, cartID, email string, cart *CartStore) (domain.Order, port.CheckoutSession, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, port.CheckoutSession{}, ErrEmptyCart
	}

	subtotal := pricing.SubtotalCents(lines)
	total := subtotal
	var offerID string
	if offer := s.offers.ActiveOffer(ctx); offer != nil {
		total = pricing.DiscountedSubtotalCents(lines, offer.DiscountPercent)
		offerID = offer.ID
	}

	now := s.now()
	order := domain.Order{
		ID:            uuid.New().String(),
		CartID:        cartID,
		Email:         email,
		SubtotalCents: subtotal,
		DiscountCents: subtotal - total,
		TotalCents:    total,
		OfferID:       offerID,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      l.ProductID,
			VariantKey:     l.VariantKey,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
		})
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, port.CheckoutSession{}, fmt.Errorf("create order: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, order)
	if err != nil {
		return domain.Order{}, port.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("order_id", order.ID),
		zap.String("cart_id", cartID),
		zap.Int64("total_cents", order.TotalCents))
	return order, session, nil
}

// HandlePaid marks an order paid in response to the provider's event.
// Replayed events for an already-paid order are acknowledged silently.
func (s *CheckoutService) HandlePaid(ctx context.Context, orderID string) error {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status == domain.OrderStatusPaid {
		return nil
	}
	if err := s.orders.UpdateOrderStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	s.logger.Info("order paid", zap.String("order_id", orderID))
	return nil
}
