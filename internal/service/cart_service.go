package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wearly/backend/internal/cache"
	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/repository"
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	log      *zap.Logger
	sfg      singleflight.Group // Prevents cache stampede
}

// NewCartService wires the cart workflows. cartCache may be nil, which
// disables caching without changing behavior.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, cartCache cache.CartCache, log *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cartCache,
		log:      log,
	}
}

// AddItem puts quantity units of a product variant into the owner's cart,
// creating the cart when none exists. Repeated calls for the same
// (product, size, color) accumulate. The second return reports whether a
// new cart document was created.
//
// A guest owner with an empty id gets a freshly generated guest identity.
func (s *CartService) AddItem(ctx context.Context, owner domain.CartOwner, productID, size, color string, quantity int) (*domain.Cart, bool, error) {
	if quantity <= 0 {
		return nil, false, invalidInput("quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, false, notFound("product not found")
		}
		return nil, false, err
	}

	var cart *domain.Cart
	if owner.ID != "" {
		cart, err = s.carts.FindByOwner(ctx, owner)
		if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
			return nil, false, err
		}
	}

	// Line snapshot: price, name and image are copied at add time and never
	// re-read from the catalog.
	line := domain.CartItem{
		ProductID: productID,
		Name:      product.Name,
		Image:     product.FirstImage(),
		Price:     product.Price,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}

	if cart == nil {
		if owner.Kind == domain.OwnerGuest && owner.ID == "" {
			owner.ID = "guest_" + uuid.NewString()
		}

		cart = &domain.Cart{
			ID:    uuid.NewString(),
			Items: []domain.CartItem{line},
		}
		switch owner.Kind {
		case domain.OwnerUser:
			cart.UserID = owner.ID
		case domain.OwnerGuest:
			cart.GuestID = owner.ID
		}
		cart.RecomputeTotal()

		if err := s.carts.Insert(ctx, cart); err != nil {
			return nil, false, err
		}
		return cart, true, nil
	}

	if idx := cart.FindItem(productID, size, color); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, line)
	}
	cart.RecomputeTotal()

	if err := s.updateCart(ctx, cart); err != nil {
		return nil, false, err
	}

	s.invalidateCache(owner)
	return cart, false, nil
}

// SetItemQuantity sets the quantity of a cart line absolutely. A quantity
// of zero or less removes the line; the cart document survives even when
// it ends up empty.
func (s *CartService) SetItemQuantity(ctx context.Context, owner domain.CartOwner, productID, size, color string, quantity int) (*domain.Cart, error) {
	cart, err := s.lookupCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID, size, color)
	if idx < 0 {
		return nil, notFound("product not found in cart")
	}

	if quantity > 0 {
		cart.Items[idx].Quantity = quantity
	} else {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	cart.RecomputeTotal()

	if err := s.updateCart(ctx, cart); err != nil {
		return nil, err
	}

	s.invalidateCache(owner)
	return cart, nil
}

// RemoveItem drops a cart line entirely.
func (s *CartService) RemoveItem(ctx context.Context, owner domain.CartOwner, productID, size, color string) (*domain.Cart, error) {
	cart, err := s.lookupCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID, size, color)
	if idx < 0 {
		return nil, notFound("product not found in cart")
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.RecomputeTotal()

	if err := s.updateCart(ctx, cart); err != nil {
		return nil, err
	}

	s.invalidateCache(owner)
	return cart, nil
}

// GetCart returns the owner's cart, reading through the cache. Concurrent
// misses for the same owner collapse into a single repository read.
func (s *CartService) GetCart(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(flightKey(owner), func() (interface{}, error) {
		if s.cache != nil {
			cart, errCache := s.cache.Get(ctx, owner)
			if errCache == nil {
				return cart, nil
			}
			if !errors.Is(errCache, cache.ErrCacheMiss) {
				s.log.Warn("cache get failed", zap.Error(errCache))
			}
		}

		cart, errGet := s.carts.FindByOwner(ctx, owner)
		if errGet != nil {
			if errors.Is(errGet, repository.ErrCartNotFound) {
				return nil, notFound("cart not found")
			}
			return nil, errGet
		}

		if s.cache != nil {
			// The async set can race a concurrent write's invalidate and
			// reinstall a stale cart; the TTL bounds how long that lasts.
			go func() {
				if errSet := s.cache.Set(context.Background(), owner, cart); errSet != nil {
					s.log.Warn("cache set failed", zap.Error(errSet))
				}
			}()
		}

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) lookupCart(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	if owner.ID == "" {
		return nil, notFound("cart not found")
	}
	cart, err := s.carts.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, notFound("cart not found")
		}
		return nil, err
	}
	return cart, nil
}

func (s *CartService) updateCart(ctx context.Context, cart *domain.Cart) error {
	err := s.carts.Update(ctx, cart)
	if errors.Is(err, repository.ErrVersionConflict) {
		return conflict("cart was modified concurrently, retry the request")
	}
	return err
}

func (s *CartService) invalidateCache(owner domain.CartOwner) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		s.log.Warn("cache invalidate failed", zap.Error(err))
	}
}

func flightKey(owner domain.CartOwner) string {
	return fmt.Sprintf("%d:%s", owner.Kind, owner.ID)
}
