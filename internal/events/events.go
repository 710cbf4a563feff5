package events

import (
	"time"

	"github.com/wearly/backend/internal/domain"
)

// OrderCreated is published after checkout finalization produces an order.
type OrderCreated struct {
	EventID    string            `json:"event_id"`
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	TotalPrice float64           `json:"total_price"`
	Items      []domain.CartItem `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
}
