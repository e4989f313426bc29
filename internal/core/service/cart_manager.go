package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/port"
)

// StorageFactory binds a cart id to its durable storage slot.
type StorageFactory func(cartID string) port.CartStorage

// CartManager hands out exactly one CartStore per cart id for the lifetime
// of the process, hydrating each on first use.
type CartManager struct {
	newStorage StorageFactory
	logger     *zap.Logger

	mu     sync.Mutex
	stores map[string]*CartStore
}

func NewCartManager(newStorage StorageFactory, logger *zap.Logger) *CartManager {
	return &CartManager{
		newStorage: newStorage,
		logger:     logger,
		stores:     make(map[string]*CartStore),
	}
}

// Store returns the cart for id, creating and hydrating it on first use.
func (m *CartManager) Store(ctx context.Context, cartID string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[cartID]; ok {
		return s
	}
	s := NewCartStore(ctx, m.newStorage(cartID), m.logger.With(zap.String("cart_id", cartID)))
	m.stores[cartID] = s
	return s
}
