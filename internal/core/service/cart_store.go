package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/core/pricing"
	"github.com/fashionstore/cart-service/internal/port"
)

// Subscriber is invoked with a snapshot of the line list after every
// completed mutation.
type Subscriber func(lines []domain.CartLine)

// CartStore holds the authoritative line list for one cart and keeps it
// synchronized with its storage slot. Derived values are recomputed from the
// line list on every read, so they are never stale relative to the last
// completed mutation. A persistence failure is logged and swallowed; the
// in-memory list stays the source of truth.
type CartStore struct {
	storage port.CartStorage
	logger  *zap.Logger

	mu    sync.Mutex
	lines []domain.CartLine
	subs  []Subscriber
}

// NewCartStore builds a store hydrated from its storage slot. A missing or
// unreadable snapshot yields an empty cart; hydration never fails.
func NewCartStore(ctx context.Context, storage port.CartStorage, logger *zap.Logger) *CartStore {
	s := &CartStore{storage: storage, logger: logger}
	lines, ok, err := storage.Load(ctx)
	if err != nil {
		logger.Warn("cart snapshot load failed, starting empty", zap.Error(err))
		return s
	}
	if ok {
		s.lines = lines
	}
	return s
}

// Subscribe registers fn to run after each mutation.
func (s *CartStore) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Add puts qty units of item into the cart, merging into an existing line
// with the same key. Quantity is additive on merge; display fields are
// refreshed to the incoming values. An out-of-stock item is ignored and a
// non-positive qty is treated as 1.
func (s *CartStore) Add(ctx context.Context, item domain.CartLine, qty int) {
	if item.StockLimit != nil && *item.StockLimit <= 0 {
		return
	}
	if qty < 1 {
		qty = 1
	}

	s.mutate(ctx, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, item.Key())
		if idx < 0 {
			next := domain.ClampQuantity(qty, item.StockLimit)
			if next <= 0 {
				return lines, false
			}
			item.Quantity = next
			return append(lines, item), true
		}

		existing := lines[idx]
		limit := existing.StockLimit
		if limit == nil {
			limit = item.StockLimit
		}
		next := domain.ClampQuantity(existing.Quantity+qty, limit)
		if next <= 0 {
			return append(lines[:idx], lines[idx+1:]...), true
		}

		merged := existing
		merged.Name = item.Name
		merged.UnitPriceCents = item.UnitPriceCents
		if item.StockLimit != nil {
			merged.StockLimit = item.StockLimit
		}
		if item.ImageURL != "" {
			merged.ImageURL = item.ImageURL
		}
		merged.Quantity = next
		lines[idx] = merged
		return lines, true
	})
}

// Remove deletes the line matching (productID, variantKey). Missing lines
// are a no-op.
func (s *CartStore) Remove(ctx context.Context, productID, variantKey string) {
	key := domain.LineKey(productID, variantKey)
	s.mutate(ctx, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, key)
		if idx < 0 {
			return lines, false
		}
		return append(lines[:idx], lines[idx+1:]...), true
	})
}

// SetQuantity updates a line's quantity in place, clamped to the line's own
// stored stock limit. The line is removed when the clamp yields zero, which
// only happens with a stock limit of 0. Missing lines are a no-op.
func (s *CartStore) SetQuantity(ctx context.Context, productID string, qty int, variantKey string) {
	key := domain.LineKey(productID, variantKey)
	s.mutate(ctx, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, key)
		if idx < 0 {
			return lines, false
		}
		next := domain.ClampQuantity(qty, lines[idx].StockLimit)
		if next <= 0 {
			return append(lines[:idx], lines[idx+1:]...), true
		}
		lines[idx].Quantity = next
		return lines, true
	})
}

// Increment raises a line's quantity by one, staying at the stock limit if
// already there.
func (s *CartStore) Increment(ctx context.Context, productID, variantKey string) {
	key := domain.LineKey(productID, variantKey)
	s.mutate(ctx, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, key)
		if idx < 0 {
			return lines, false
		}
		next := domain.ClampQuantity(lines[idx].Quantity+1, lines[idx].StockLimit)
		if next <= 0 {
			return append(lines[:idx], lines[idx+1:]...), true
		}
		lines[idx].Quantity = next
		return lines, true
	})
}

// Decrement lowers a line's quantity by one, removing the line at the
// transition from 1 to 0.
func (s *CartStore) Decrement(ctx context.Context, productID, variantKey string) {
	key := domain.LineKey(productID, variantKey)
	s.mutate(ctx, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, key)
		if idx < 0 {
			return lines, false
		}
		next := lines[idx].Quantity - 1
		if next <= 0 {
			return append(lines[:idx], lines[idx+1:]...), true
		}
		lines[idx].Quantity = domain.ClampQuantity(next, lines[idx].StockLimit)
		return lines, true
	})
}

// Clear empties the cart unconditionally.
func (s *CartStore) Clear(ctx context.Context) {
	s.mutate(ctx, func([]domain.CartLine) ([]domain.CartLine, bool) {
		return nil, true
	})
}

// Lines returns a copy of the current line list in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// Count is the total quantity across all lines.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// SubtotalCents is the undiscounted sum of unit price times quantity.
func (s *CartStore) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.SubtotalCents(s.lines)
}

// SubtotalFormatted is SubtotalCents rendered as a currency string.
func (s *CartStore) SubtotalFormatted() string {
	return pricing.FormatCents(s.SubtotalCents())
}

// CheckoutItems projects the cart into the form the checkout process
// consumes.
func (s *CartStore) CheckoutItems() []domain.CheckoutItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.CheckoutItem, 0, len(s.lines))
	for _, l := range s.lines {
		if l.Quantity <= 0 {
			continue
		}
		items = append(items, domain.CheckoutItem{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			VariantKey: l.VariantKey,
		})
	}
	return items
}

// mutate applies fn to the line list, persists the new snapshot and runs
// subscribers, all before returning. fn reports whether it changed anything;
// untouched state is neither persisted nor announced. The lock is held for
// the whole mutation so snapshots reach storage in order; subscribers run on
// the mutating goroutine and must not call back into the store.
func (s *CartStore) mutate(ctx context.Context, fn func([]domain.CartLine) ([]domain.CartLine, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.lines)
	if !changed {
		return
	}
	s.lines = next

	snapshot := copyLines(next)
	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.logger.Error("cart snapshot write failed", zap.Error(err))
	}
	for _, sub := range s.subs {
		sub(snapshot)
	}
}

func indexOf(lines []domain.CartLine, key string) int {
	for i, l := range lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
