package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
)

// ProductOperations is what the product handler needs from the service
// layer.
type ProductOperations interface {
	Create(ctx context.Context, product *domain.Product, createdBy string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	products ProductOperations
	log      *zap.Logger
	timeout  time.Duration
}

func NewProductHandler(products ProductOperations, log *zap.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		log:      log,
		timeout:  timeout,
	}
}

// POST /api/products (authenticated)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.products.Create(ctx, &product, userID)
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GET /api/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
