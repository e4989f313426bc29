package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

var ErrNoOrder = errors.New("order does not exist")

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (m *MySQLOrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, cart_id, email, subtotal_cents, discount_cents, total_cents, offer_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.CartID, order.Email, order.SubtotalCents, order.DiscountCents,
		order.TotalCents, order.OfferID, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, variant_key, name, unit_price_cents, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, item.ProductID, item.VariantKey, item.Name, item.UnitPriceCents, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLOrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, cart_id, email, subtotal_cents, discount_cents, total_cents, offer_id, status, created_at, updated_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.CartID, &order.Email, &order.SubtotalCents, &order.DiscountCents,
		&order.TotalCents, &order.OfferID, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, variant_key, name, unit_price_cents, quantity
		FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.VariantKey, &item.Name, &item.UnitPriceCents, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return &order, nil
}

func (m *MySQLOrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNoOrder
	}

	return nil
}
