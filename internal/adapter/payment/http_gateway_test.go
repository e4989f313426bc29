package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fashionstore/cart-service/internal/core/domain"
)

func TestCreateSession(t *testing.T) {
	var got sessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(sessionResponse{URL: "https://pay.example/s/abc", SessionID: "sess-abc"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	session, err := g.CreateSession(context.Background(), domain.Order{
		ID:         "order-1",
		TotalCents: 3198,
		Email:      "a@b.test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.URL != "https://pay.example/s/abc" || session.SessionID != "sess-abc" {
		t.Errorf("unexpected session: %+v", session)
	}
	if got.OrderID != "order-1" || got.AmountCents != 3198 || got.Currency != "EUR" || got.Email != "a@b.test" {
		t.Errorf("unexpected session request: %+v", got)
	}
}

func TestCreateSession_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	if _, err := g.CreateSession(context.Background(), domain.Order{ID: "order-1"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCreateSession_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sessionResponse{SessionID: "sess-abc"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	if _, err := g.CreateSession(context.Background(), domain.Order{ID: "order-1"}); err == nil {
		t.Fatal("a session with no url is an error")
	}
}
