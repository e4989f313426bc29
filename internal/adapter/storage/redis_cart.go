package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartStorage keeps one JSON array snapshot per cart under a fixed
// key. Slot contents that do not parse as a JSON array read as absent, so a
// corrupt or foreign value can never break hydration.
type RedisCartStorage struct {
	client *redis.Client
	cartID string
}

func NewRedisCartStorage(client *redis.Client, cartID string) *RedisCartStorage {
	return &RedisCartStorage{client: client, cartID: cartID}
}

func (r *RedisCartStorage) key() string {
	return cartKeyPrefix + r.cartID
}

func (r *RedisCartStorage) Load(ctx context.Context) ([]domain.CartLine, bool, error) {
	raw, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cart snapshot: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil || lines == nil {
		// Not a JSON array: same as no snapshot.
		return nil, false, nil
	}
	return lines, true, nil
}

func (r *RedisCartStorage) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key(), raw, 0).Err(); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}
