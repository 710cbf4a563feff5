package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/repository"
)

type OrderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, log *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		log:    log,
	}
}

// OrderDetail is an order with the ordering user's name and email attached.
type OrderDetail struct {
	domain.Order
	User *domain.User `json:"user,omitempty"`
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetByID returns a single order with user contact details. A missing user
// record only drops the attachment, never the order.
func (s *OrderService) GetByID(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, notFound("order not found")
		}
		return nil, err
	}

	detail := &OrderDetail{Order: *order}
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		s.log.Warn("order references missing user",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID))
	} else {
		detail.User = user
	}

	return detail, nil
}
