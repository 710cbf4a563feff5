package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/service"
)

// OrderOperations is what the orders handler needs from the service layer.
type OrderOperations interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*service.OrderDetail, error)
}

type OrdersHandler struct {
	orders  OrderOperations
	log     *zap.Logger
	timeout time.Duration
}

func NewOrdersHandler(orders OrderOperations, log *zap.Logger, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		log:     log,
		timeout: timeout,
	}
}

// GET /api/orders/my-orders (authenticated)
func (h *OrdersHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListByUser(ctx, userID)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/orders/{id} (authenticated)
func (h *OrdersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
