package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

// MemoryCartStorage is an in-process slot with the same parse rules as the
// Redis implementation. It backs tests and hosts without durable storage
// that still want snapshots within the process lifetime.
type MemoryCartStorage struct {
	mu  sync.Mutex
	raw []byte
	set bool
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{}
}

// Seed places raw bytes into the slot as if an external writer had put them
// there.
func (m *MemoryCartStorage) Seed(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.set = true
}

func (m *MemoryCartStorage) Load(ctx context.Context) ([]domain.CartLine, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(m.raw, &lines); err != nil || lines == nil {
		return nil, false, nil
	}
	return lines, true, nil
}

func (m *MemoryCartStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.set = true
	return nil
}

// NoopCartStorage discards writes and never has a snapshot. It is the
// implementation for hosts with no durable local storage at all.
type NoopCartStorage struct{}

func (NoopCartStorage) Load(ctx context.Context) ([]domain.CartLine, bool, error) {
	return nil, false, nil
}

func (NoopCartStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	return nil
}
