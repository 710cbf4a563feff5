package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
)

// CartOperations is what the cart handler needs from the service layer.
// Consumers define this interface, not the service implementation.
type CartOperations interface {
	AddItem(ctx context.Context, owner domain.CartOwner, productID, size, color string, quantity int) (*domain.Cart, bool, error)
	SetItemQuantity(ctx context.Context, owner domain.CartOwner, productID, size, color string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner domain.CartOwner, productID, size, color string) (*domain.Cart, error)
	GetCart(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	Merge(ctx context.Context, userID, guestID string) (*domain.Cart, error)
}

type CartHandler struct {
	carts   CartOperations
	log     *zap.Logger
	timeout time.Duration
}

func NewCartHandler(carts CartOperations, log *zap.Logger, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		log:     log,
		timeout: timeout,
	}
}

// CartItemRequestDTO addresses a cart line. UserID/GuestID identify the
// cart on the unauthenticated routes; a user id wins when both are sent.
type CartItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	GuestID   string `json:"guestId"`
	UserID    string `json:"userId"`
}

type MergeRequestDTO struct {
	GuestID string `json:"guestId"`
}

// POST /api/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}

	owner, _ := domain.ResolveOwner(req.UserID, req.GuestID)
	cart, created, err := h.carts.AddItem(ctx, owner, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, cart)
}

// PUT /api/cart
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	owner, ok := domain.ResolveOwner(req.UserID, req.GuestID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "cart not found")
		return
	}

	cart, err := h.carts.SetItemQuantity(ctx, owner, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// DELETE /api/cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	owner, ok := domain.ResolveOwner(req.UserID, req.GuestID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "cart not found")
		return
	}

	cart, err := h.carts.RemoveItem(ctx, owner, req.ProductID, req.Size, req.Color)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// GET /api/cart?userId=&guestId=
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	owner, ok := domain.ResolveOwner(r.URL.Query().Get("userId"), r.URL.Query().Get("guestId"))
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "cart not found")
		return
	}

	cart, err := h.carts.GetCart(ctx, owner)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// POST /api/cart/merge (authenticated)
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req MergeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.Merge(ctx, userID, req.GuestID)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}
