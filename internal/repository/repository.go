package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wearly/backend/internal/domain"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrVersionConflict  = errors.New("cart was modified concurrently")
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrSessionFinalized = errors.New("checkout session is finalized")
	ErrSessionNotPaid   = errors.New("checkout session is not paid")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrUserNotFound     = errors.New("user not found")
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	FindByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	Insert(ctx context.Context, cart *domain.Cart) error
	// Update persists a read-modify-write conditionally on the version the
	// caller read, bumping it on success. ErrVersionConflict signals an
	// interleaved writer.
	Update(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, owner domain.CartOwner) error
}

type CheckoutRepository interface {
	Insert(ctx context.Context, session *domain.CheckoutSession) error
	FindByID(ctx context.Context, id string) (*domain.CheckoutSession, error)
	// SetPaid flips the session to paid, storing the details verbatim and
	// stamping paidAt. Refused once the session is finalized.
	SetPaid(ctx context.Context, id string, details any, paidAt time.Time) error
	// Finalize atomically claims the paid -> finalized transition. The
	// conditional filter makes the claim exactly-once at the store level.
	Finalize(ctx context.Context, id string, finalizedAt time.Time) error
}

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
