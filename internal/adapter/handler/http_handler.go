package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fashionstore/cart-service/internal/core/domain"
	"github.com/fashionstore/cart-service/internal/core/pricing"
	"github.com/fashionstore/cart-service/internal/core/service"
)

type HTTPHandler struct {
	carts    *service.CartManager
	offers   *service.OfferService
	checkout *service.CheckoutService
	logger   *zap.Logger
}

func NewHTTPHandler(carts *service.CartManager, offers *service.OfferService, checkout *service.CheckoutService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{carts: carts, offers: offers, checkout: checkout, logger: logger}
}

// Routes mounts the storefront cart API.
func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Get("/api/flash-offer", h.FlashOffer)
	r.Route("/api/cart/{cartID}", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Post("/items/{productID}/increment", h.Increment)
		r.Post("/items/{productID}/decrement", h.Decrement)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
	r.Post("/api/checkout", h.BeginCheckout)
	r.Post("/api/checkout/events", h.CheckoutEvent)
	return r
}

type addItemRequest struct {
	ProductID      string `json:"product_id"`
	VariantKey     string `json:"size"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"price_cents"`
	StockLimit     *int   `json:"stock"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"qty"`
}

type setQuantityRequest struct {
	Quantity   int    `json:"qty"`
	VariantKey string `json:"size"`
}

type cartResponse struct {
	Lines             []domain.CartLine `json:"lines"`
	Count             int               `json:"count"`
	SubtotalCents     int64             `json:"subtotal_cents"`
	SubtotalFormatted string            `json:"subtotal_formatted"`
	DiscountCents     int64             `json:"discount_cents"`
	TotalCents        int64             `json:"total_cents"`
	TotalFormatted    string            `json:"total_formatted"`
}

type flashOfferResponse struct {
	Active bool               `json:"active"`
	Offer  *domain.FlashOffer `json:"offer,omitempty"`
}

type checkoutRequest struct {
	CartID string `json:"cart_id"`
	Email  string `json:"email"`
}

type checkoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
}

type checkoutEventRequest struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) FlashOffer(w http.ResponseWriter, r *http.Request) {
	offer := h.offers.ActiveOffer(r.Context())
	if offer == nil {
		writeJSON(w, http.StatusOK, flashOfferResponse{Active: false})
		return
	}
	writeJSON(w, http.StatusOK, flashOfferResponse{Active: true, Offer: offer})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ProductID == "" || req.UnitPriceCents < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}

	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.Add(r.Context(), domain.CartLine{
		ProductID:      req.ProductID,
		VariantKey:     req.VariantKey,
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
		StockLimit:     req.StockLimit,
		ImageURL:       req.ImageURL,
	}, req.Quantity)
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.SetQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity, req.VariantKey)
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) Increment(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.Increment(r.Context(), chi.URLParam(r, "productID"), r.URL.Query().Get("variant"))
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.Decrement(r.Context(), chi.URLParam(r, "productID"), r.URL.Query().Get("variant"))
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.Remove(r.Context(), chi.URLParam(r, "productID"), r.URL.Query().Get("variant"))
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Store(r.Context(), chi.URLParam(r, "cartID"))
	store.Clear(r.Context())
	h.writeCart(w, r, store)
}

func (h *HTTPHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.CartID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing cart_id"})
		return
	}

	store := h.carts.Store(r.Context(), req.CartID)
	order, session, err := h.checkout.BeginCheckout(r.Context(), req.CartID, req.Email, store)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart is empty"})
			return
		}
		h.logger.Error("checkout failed", zap.String("cart_id", req.CartID), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "checkout unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		URL:       session.URL,
		SessionID: session.SessionID,
		OrderID:   order.ID,
	})
}

func (h *HTTPHandler) CheckoutEvent(w http.ResponseWriter, r *http.Request) {
	var req checkoutEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Type != "checkout.paid" {
		// Acknowledge unknown events so the provider stops retrying them.
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.checkout.HandlePaid(r.Context(), req.OrderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
			return
		}
		h.logger.Error("paid event failed", zap.String("order_id", req.OrderID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeCart(w http.ResponseWriter, r *http.Request, store *service.CartStore) {
	lines := store.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}

	subtotal := pricing.SubtotalCents(lines)
	total := subtotal
	if offer := h.offers.ActiveOffer(r.Context()); offer != nil {
		total = pricing.DiscountedSubtotalCents(lines, offer.DiscountPercent)
	}
	discount := subtotal - total
	if discount < 0 {
		discount = 0
	}

	writeJSON(w, http.StatusOK, cartResponse{
		Lines:             lines,
		Count:             store.Count(),
		SubtotalCents:     subtotal,
		SubtotalFormatted: pricing.FormatCents(subtotal),
		DiscountCents:     discount,
		TotalCents:        total,
		TotalFormatted:    pricing.FormatCents(total),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
