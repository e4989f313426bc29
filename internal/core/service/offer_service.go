package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/port"
)

// OfferService resolves the live flash offer, reusing the answer within a
// small cache window. Lookup failures degrade to "no active offer" and are
// never surfaced to callers.
type OfferService struct {
	repo   port.OfferRepository
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	cached    *domain.FlashOffer
	fetchedAt time.Time
	haveCache bool
}

func NewOfferService(repo port.OfferRepository, ttl time.Duration, logger *zap.Logger) *OfferService {
	return &OfferService{repo: repo, ttl: ttl, logger: logger, now: time.Now}
}

// ActiveOffer returns the current offer, or nil when none is live. Offers
// outside their window or without a positive discount are filtered here as
// well, so a stale repository row never discounts anything.
func (s *OfferService) ActiveOffer(ctx context.Context) *domain.FlashOffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.haveCache && now.Sub(s.fetchedAt) < s.ttl {
		return s.cached
	}

	offer, err := s.repo.ActiveOffer(ctx)
	if err != nil {
		s.logger.Warn("flash offer lookup failed", zap.Error(err))
		offer = nil
	}
	if offer != nil && (offer.DiscountPercent <= 0 || !offer.ActiveAt(now)) {
		offer = nil
	}

	s.cached = offer
	s.fetchedAt = now
	s.haveCache = true
	return offer
}
