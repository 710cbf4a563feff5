package service

import (
	"context"
	"sync"
	"time"

	"github.com/wearly/backend/internal/domain"
	"github.com/wearly/backend/internal/repository"
)

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = append([]domain.CartItem(nil), c.Items...)
	return &clone
}

type mockCartRepo struct {
	m         sync.RWMutex
	carts     map[string]*domain.Cart
	insertErr error
	updateErr error
	deleteErr error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *mockCartRepo) FindByOwner(_ context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	for _, cart := range r.carts {
		if owner.Kind == domain.OwnerUser && cart.UserID == owner.ID {
			return cloneCart(cart), nil
		}
		if owner.Kind == domain.OwnerGuest && cart.GuestID == owner.ID {
			return cloneCart(cart), nil
		}
	}
	return nil, repository.ErrCartNotFound
}

func (r *mockCartRepo) Insert(_ context.Context, cart *domain.Cart) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	cart.Version = 1
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = cart.CreatedAt
	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (r *mockCartRepo) Update(_ context.Context, cart *domain.Cart) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.carts[cart.ID]
	if !ok || stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (r *mockCartRepo) Delete(_ context.Context, owner domain.CartOwner) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, cart := range r.carts {
		if owner.Kind == domain.OwnerUser && cart.UserID == owner.ID {
			delete(r.carts, id)
			return nil
		}
		if owner.Kind == domain.OwnerGuest && cart.GuestID == owner.ID {
			delete(r.carts, id)
			return nil
		}
	}
	return repository.ErrCartNotFound
}

func (r *mockCartRepo) count() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return len(r.carts)
}

type mockProductRepo struct {
	m        sync.RWMutex
	products map[string]*domain.Product
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	repo := &mockProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *mockProductRepo) Insert(_ context.Context, product *domain.Product) error {
	r.m.Lock()
	defer r.m.Unlock()
	product.CreatedAt = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *mockProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

type mockCheckoutRepo struct {
	m        sync.RWMutex
	sessions map[string]*domain.CheckoutSession
}

func newMockCheckoutRepo() *mockCheckoutRepo {
	return &mockCheckoutRepo{sessions: make(map[string]*domain.CheckoutSession)}
}

func (r *mockCheckoutRepo) Insert(_ context.Context, session *domain.CheckoutSession) error {
	r.m.Lock()
	defer r.m.Unlock()
	session.CreatedAt = time.Now()
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *mockCheckoutRepo) FindByID(_ context.Context, id string) (*domain.CheckoutSession, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *mockCheckoutRepo) SetPaid(_ context.Context, id string, details any, paidAt time.Time) error {
	r.m.Lock()
	defer r.m.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	if session.IsFinalized {
		return repository.ErrSessionFinalized
	}
	session.IsPaid = true
	session.PaymentStatus = domain.PaymentStatusPaid
	session.PaymentDetails = details
	session.PaidAt = &paidAt
	return nil
}

func (r *mockCheckoutRepo) Finalize(_ context.Context, id string, finalizedAt time.Time) error {
	r.m.Lock()
	defer r.m.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	if session.IsFinalized {
		return repository.ErrSessionFinalized
	}
	if !session.IsPaid {
		return repository.ErrSessionNotPaid
	}
	session.IsFinalized = true
	session.FinalizedAt = &finalizedAt
	return nil
}

type mockOrderRepo struct {
	m         sync.RWMutex
	orders    []*domain.Order
	insertErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{}
}

func (r *mockOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	order.CreatedAt = time.Now()
	clone := *order
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *mockOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	for _, order := range r.orders {
		if order.ID == id {
			clone := *order
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	// Newest first, mirroring the Mongo sort.
	orders := []domain.Order{}
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			orders = append(orders, *r.orders[i])
		}
	}
	return orders, nil
}

func (r *mockOrderRepo) count() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return len(r.orders)
}

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}
