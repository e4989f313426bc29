// Package payment talks to the hosted payment provider.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/port"
)

// HTTPGateway creates hosted checkout sessions against the provider's
// sessions endpoint. The provider redirects the shopper and later posts a
// paid event back to the service; nothing else crosses this boundary.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type sessionRequest struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Email       string `json:"email,omitempty"`
}

type sessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

func (g *HTTPGateway) CreateSession(ctx context.Context, order domain.Order) (port.CheckoutSession, error) {
	body, err := json.Marshal(sessionRequest{
		OrderID:     order.ID,
		AmountCents: order.TotalCents,
		Currency:    "EUR",
		Email:       order.Email,
	})
	if err != nil {
		return port.CheckoutSession{}, fmt.Errorf("encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return port.CheckoutSession{}, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return port.CheckoutSession{}, fmt.Errorf("call payment provider: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return port.CheckoutSession{}, fmt.Errorf("payment provider returned %d", res.StatusCode)
	}

	var out sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return port.CheckoutSession{}, fmt.Errorf("decode session response: %w", err)
	}
	if out.URL == "" {
		return port.CheckoutSession{}, errors.New("payment provider returned no checkout url")
	}

	return port.CheckoutSession{URL: out.URL, SessionID: out.SessionID}, nil
}
