package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/service"
)

// CheckoutOperations is what the checkout handler needs from the service
// layer.
type CheckoutOperations interface {
	Create(ctx context.Context, userID string, items []domain.CartItem, address domain.ShippingAddress, paymentMethod string, totalPrice float64) (*domain.CheckoutSession, error)
	MarkPaid(ctx context.Context, id, paymentStatus string, paymentDetails any) (*domain.CheckoutSession, error)
	Finalize(ctx context.Context, id string) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkouts CheckoutOperations
	log       *zap.Logger
	timeout   time.Duration
}

func NewCheckoutHandler(checkouts CheckoutOperations, log *zap.Logger, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		log:       log,
		timeout:   timeout,
	}
}

type CreateCheckoutRequestDTO struct {
	CheckoutItems   []domain.CartItem      `json:"checkoutItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	TotalPrice      float64                `json:"totalPrice"`
}

type PayRequestDTO struct {
	PaymentStatus  string `json:"paymentStatus"`
	PaymentDetails any    `json:"paymentDetails"`
}

// POST /api/checkout (authenticated)
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CreateCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.checkouts.Create(ctx, userID, req.CheckoutItems, req.ShippingAddress, req.PaymentMethod, req.TotalPrice)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// PUT /api/checkout/{id}/pay (authenticated)
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PayRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.checkouts.MarkPaid(ctx, chi.URLParam(r, "id"), req.PaymentStatus, req.PaymentDetails)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// POST /api/checkout/{id}/finalize (authenticated)
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.checkouts.Finalize(ctx, chi.URLParam(r, "id"))
	if err != nil {
		// On the wire a duplicate finalization is a client error like the
		// not-paid case; the message still tells the two apart.
		if errors.Is(err, service.ErrConflict) {
			respondError(w, http.StatusBadRequest, "invalid_state", err.Error())
			return
		}
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}
