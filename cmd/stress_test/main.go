package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/adapter/storage"
	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/core/service"
	"github.com/fashionstore/cart-service/internal/port"
)

const (
	redisAddr      = "localhost:6379"
	productID      = "stress-product"
	stockLimit     = 20
	totalRequests  = 50
	unitPriceCents = 1999
)

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	cartID := "stress-" + uuid.New().String()
	rdb.Del(ctx, "cart:"+cartID)

	logger := zap.NewNop()
	carts := service.NewCartManager(func(id string) port.CartStorage {
		return storage.NewRedisCartStorage(rdb, id)
	}, logger)
	store := carts.Store(ctx, cartID)

	limit := stockLimit
	item := domain.CartLine{
		ProductID:      productID,
		Name:           "Stress Product",
		UnitPriceCents: unitPriceCents,
		StockLimit:     &limit,
	}

	// Hammer one line from many goroutines
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Add(ctx, item, 1)
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	lines := store.Lines()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Stock Limit:      %d\n", stockLimit)
	fmt.Printf("Total Adds:       %d\n", totalRequests)
	fmt.Printf("Lines:            %d\n", len(lines))
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	// Assertions
	if len(lines) == 1 && lines[0].Quantity == stockLimit {
		fmt.Printf("PASS: quantity clamped to %d\n", stockLimit)
	} else if len(lines) == 1 {
		fmt.Printf("FAIL: expected quantity %d, got %d\n", stockLimit, lines[0].Quantity)
	} else {
		fmt.Printf("FAIL: expected 1 line, got %d\n", len(lines))
	}

	// Verify the snapshot in Redis agrees with the in-memory state
	raw, err := rdb.Get(ctx, "cart:"+cartID).Bytes()
	if err != nil {
		fmt.Printf("FAIL: no snapshot in redis: %v\n", err)
		return
	}
	var persisted []domain.CartLine
	if err := json.Unmarshal(raw, &persisted); err != nil {
		fmt.Printf("FAIL: snapshot is not a JSON array: %v\n", err)
		return
	}
	if len(persisted) == 1 && persisted[0].Quantity == stockLimit {
		fmt.Println("PASS: redis snapshot matches")
	} else {
		fmt.Printf("FAIL: snapshot mismatch: %+v\n", persisted)
	}

	rdb.Del(ctx, "cart:"+cartID)
}
