package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

// MySQLOfferRepository reads the storefront's flash offer tables: a
// singleton settings row gating the feature, and the offers themselves.
// The newest enabled offer with a positive discount inside its window wins.
type MySQLOfferRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewMySQLOfferRepository(db *sql.DB) *MySQLOfferRepository {
	return &MySQLOfferRepository{db: db, now: time.Now}
}

func (m *MySQLOfferRepository) ActiveOffer(ctx context.Context) (*domain.FlashOffer, error) {
	var enabled bool
	err := m.db.QueryRowContext(ctx, `
		SELECT flash_offers_enabled FROM settings WHERE singleton = TRUE`,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	if !enabled {
		return nil, nil
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, discount_percent, starts_at, ends_at, show_popup, popup_title, popup_text
		FROM flash_offers
		WHERE is_enabled = TRUE
		ORDER BY updated_at DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query flash offers: %w", err)
	}
	defer rows.Close()

	now := m.now()
	for rows.Next() {
		var (
			offer        domain.FlashOffer
			percent      float64
			starts, ends sql.NullTime
			title, text  sql.NullString
		)
		if err := rows.Scan(&offer.ID, &percent, &starts, &ends, &offer.ShowPopup, &title, &text); err != nil {
			return nil, fmt.Errorf("scan flash offer: %w", err)
		}
		offer.Enabled = true
		offer.DiscountPercent = int(math.Trunc(percent))
		if starts.Valid {
			t := starts.Time
			offer.StartsAt = &t
		}
		if ends.Valid {
			t := ends.Time
			offer.EndsAt = &t
		}
		offer.PopupTitle = title.String
		offer.PopupText = text.String

		if offer.DiscountPercent > 0 && offer.ActiveAt(now) {
			return &offer, nil
		}
	}
	return nil, rows.Err()
}
