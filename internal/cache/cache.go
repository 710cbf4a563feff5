package cache

import (
	"context"
	"errors"

	"github.com/wearly/backend/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error)
	Set(ctx context.Context, owner domain.CartOwner, cart *domain.Cart) error
	Delete(ctx context.Context, owner domain.CartOwner) error
}

var ErrCacheMiss = errors.New("cache miss")
