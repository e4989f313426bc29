package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/port"
)

// Fake OrderRepository
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]domain.Order)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return errors.New("order does not exist")
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

// Fake PaymentGateway
type fakeGateway struct {
	fail     bool
	sessions int
}

func (f *fakeGateway) CreateSession(ctx context.Context, order domain.Order) (port.CheckoutSession, error) {
	if f.fail {
		return port.CheckoutSession{}, errors.New("provider unreachable")
	}
	f.sessions++
	return port.CheckoutSession{URL: "https://pay.example/s/" + order.ID, SessionID: "sess-" + order.ID}, nil
}

func newCheckoutFixture(offer *domain.FlashOffer) (*CheckoutService, *fakeOrderRepo, *fakeGateway) {
	repo := newFakeOrderRepo()
	gw := &fakeGateway{}
	offers := NewOfferService(&fakeOfferRepo{offer: offer}, time.Minute, zap.NewNop())
	return NewCheckoutService(repo, gw, offers, zap.NewNop()), repo, gw
}

func cartWith(t *testing.T, lines ...domain.CartLine) *CartStore {
	t.Helper()
	store := NewCartStore(context.Background(), &fakeStorage{}, zap.NewNop())
	for _, l := range lines {
		store.Add(context.Background(), l, l.Quantity)
	}
	return store
}

func TestBeginCheckout_Success(t *testing.T) {
	svc, repo, gw := newCheckoutFixture(nil)
	cart := cartWith(t,
		domain.CartLine{ProductID: "p1", Name: "Shirt", UnitPriceCents: 1999, Quantity: 2},
		domain.CartLine{ProductID: "p2", Name: "Hat", UnitPriceCents: 2500, Quantity: 1},
	)

	order, session, err := svc.BeginCheckout(context.Background(), "cart-1", "a@b.test", cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Error("expected a generated order id")
	}
	if order.SubtotalCents != 6498 || order.TotalCents != 6498 || order.DiscountCents != 0 {
		t.Errorf("unexpected totals: %+v", order)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(order.Items))
	}
	if session.URL == "" || session.SessionID == "" {
		t.Errorf("expected a session, got %+v", session)
	}
	if gw.sessions != 1 {
		t.Errorf("expected one session created, got %d", gw.sessions)
	}
	if stored, _ := repo.GetOrder(context.Background(), order.ID); stored == nil {
		t.Error("order must be persisted before the session is created")
	}
}

func TestBeginCheckout_AppliesFlashOffer(t *testing.T) {
	svc, _, _ := newCheckoutFixture(&domain.FlashOffer{ID: "o1", DiscountPercent: 20, Enabled: true})
	cart := cartWith(t, domain.CartLine{ProductID: "p1", UnitPriceCents: 1999, Quantity: 2})

	order, _, err := svc.BeginCheckout(context.Background(), "cart-1", "", cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Discounted per unit first: 1599 * 2.
	if order.TotalCents != 3198 {
		t.Errorf("expected total 3198, got %d", order.TotalCents)
	}
	if order.SubtotalCents != 3998 || order.DiscountCents != 800 {
		t.Errorf("unexpected totals: subtotal=%d discount=%d", order.SubtotalCents, order.DiscountCents)
	}
	if order.OfferID != "o1" {
		t.Errorf("expected offer id on the order, got %q", order.OfferID)
	}
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	svc, _, gw := newCheckoutFixture(nil)
	cart := cartWith(t)

	_, _, err := svc.BeginCheckout(context.Background(), "cart-1", "", cart)
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
	if gw.sessions != 0 {
		t.Error("no session for an empty cart")
	}
}

func TestBeginCheckout_GatewayFailure(t *testing.T) {
	svc, repo, gw := newCheckoutFixture(nil)
	gw.fail = true
	cart := cartWith(t, domain.CartLine{ProductID: "p1", UnitPriceCents: 500, Quantity: 1})

	_, _, err := svc.BeginCheckout(context.Background(), "cart-1", "", cart)
	if err == nil {
		t.Fatal("expected an error")
	}
	// The pending order stays behind for reconciliation.
	if len(repo.orders) != 1 {
		t.Errorf("expected the pending order persisted, got %d", len(repo.orders))
	}
}

func TestHandlePaid(t *testing.T) {
	svc, repo, _ := newCheckoutFixture(nil)
	cart := cartWith(t, domain.CartLine{ProductID: "p1", UnitPriceCents: 500, Quantity: 1})

	order, _, err := svc.BeginCheckout(context.Background(), "cart-1", "", cart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.HandlePaid(context.Background(), order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.GetOrder(context.Background(), order.ID)
	if stored.Status != domain.OrderStatusPaid {
		t.Errorf("expected paid, got %s", stored.Status)
	}

	// Replayed event is acknowledged silently
	if err := svc.HandlePaid(context.Background(), order.ID); err != nil {
		t.Errorf("replay must be a no-op, got %v", err)
	}
}

func TestHandlePaid_UnknownOrder(t *testing.T) {
	svc, _, _ := newCheckoutFixture(nil)
	if err := svc.HandlePaid(context.Background(), "no-such-order"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
