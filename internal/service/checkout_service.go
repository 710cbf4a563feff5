package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/cache"
	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/events"
	"github.com/wearly/backend/internal/repository"
)

type CheckoutService struct {
	checkouts repository.CheckoutRepository
	orders    repository.OrderRepository
	carts     repository.CartRepository
	cache     cache.CartCache
	publisher *events.Publisher
	log       *zap.Logger
}

// NewCheckoutService wires the checkout state machine. cartCache and
// publisher may be nil.
func NewCheckoutService(checkouts repository.CheckoutRepository, orders repository.OrderRepository, carts repository.CartRepository, cartCache cache.CartCache, publisher *events.Publisher, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		checkouts: checkouts,
		orders:    orders,
		carts:     carts,
		cache:     cartCache,
		publisher: publisher,
		log:       log,
	}
}

// Create stages a new checkout session in the Pending/unpaid state.
// The total is trusted from the client, matching the snapshot the cart
// already priced.
func (s *CheckoutService) Create(ctx context.Context, userID string, items []domain.CartItem, address domain.ShippingAddress, paymentMethod string, totalPrice float64) (*domain.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, invalidInput("no items in checkout")
	}

	session := &domain.CheckoutSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		TotalPrice:      totalPrice,
		PaymentStatus:   domain.PaymentStatusPending,
		IsPaid:          false,
	}

	if err := s.checkouts.Insert(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("checkout session created",
		zap.String("checkout_id", session.ID),
		zap.String("user_id", userID))
	return session, nil
}

// MarkPaid records the external payment confirmation. Only the literal
// status "paid" is accepted; any other value is rejected even when the
// session is already paid. Calling it twice with "paid" is harmless and
// re-stamps paidAt.
//
// A missing session is reported before the status is inspected.
func (s *CheckoutService) MarkPaid(ctx context.Context, id, paymentStatus string, paymentDetails any) (*domain.CheckoutSession, error) {
	if _, err := s.checkouts.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, notFound("checkout not found")
		}
		return nil, err
	}

	if paymentStatus != domain.PaymentStatusPaid {
		return nil, invalidInput("invalid payment status")
	}

	err := s.checkouts.SetPaid(ctx, id, paymentDetails, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			return nil, notFound("checkout not found")
		case errors.Is(err, repository.ErrSessionFinalized):
			return nil, invalidState("checkout already finalized")
		default:
			return nil, err
		}
	}

	return s.checkouts.FindByID(ctx, id)
}

// Finalize converts a paid session into a durable order, exactly once. The
// session's conditional update claims the transition before the order is
// written, so two racing finalize calls cannot both produce an order.
func (s *CheckoutService) Finalize(ctx context.Context, id string) (*domain.Order, error) {
	session, err := s.checkouts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, notFound("checkout not found")
		}
		return nil, err
	}

	if !session.CanFinalize() {
		if session.IsFinalized {
			return nil, conflict("checkout already finalized")
		}
		return nil, invalidState("checkout is not paid")
	}

	// The store-level claim still decides races between concurrent calls
	// that both read a finalizable session.
	if err := s.checkouts.Finalize(ctx, id, time.Now()); err != nil {
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			return nil, notFound("checkout not found")
		case errors.Is(err, repository.ErrSessionFinalized):
			return nil, conflict("checkout already finalized")
		case errors.Is(err, repository.ErrSessionNotPaid):
			return nil, invalidState("checkout is not paid")
		default:
			return nil, err
		}
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          session.UserID,
		OrderItems:      session.Items,
		ShippingAddress: session.ShippingAddress,
		PaymentMethod:   session.PaymentMethod,
		TotalPrice:      session.TotalPrice,
		IsPaid:          true,
		PaidAt:          session.PaidAt,
		IsDelivered:     false,
		PaymentStatus:   domain.PaymentStatusPaid,
		PaymentDetails:  session.PaymentDetails,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		// The session is already claimed; without the order record the
		// claim must surface loudly.
		s.log.Error("order insert failed after finalize claim",
			zap.String("checkout_id", id),
			zap.Error(err))
		return nil, err
	}

	// Best effort: a stale cart does not affect the order.
	userOwner := domain.UserOwner(session.UserID)
	if err := s.carts.Delete(ctx, userOwner); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		s.log.Warn("failed to delete cart after finalization",
			zap.String("user_id", session.UserID),
			zap.Error(err))
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, userOwner); err != nil {
			s.log.Warn("cache invalidate failed", zap.Error(err))
		}
	}

	s.publisher.OrderCreated(ctx, events.OrderCreated{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Items:      order.OrderItems,
		CreatedAt:  time.Now(),
	})

	s.log.Info("checkout finalized",
		zap.String("checkout_id", id),
		zap.String("order_id", order.ID),
		zap.String("user_id", order.UserID))
	return order, nil
}
