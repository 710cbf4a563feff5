package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/domain"
)

type checkoutFixture struct {
	svc       *CheckoutService
	checkouts *mockCheckoutRepo
	orders    *mockOrderRepo
	carts     *mockCartRepo
}

func newCheckoutFixture() *checkoutFixture {
	checkouts := newMockCheckoutRepo()
	orders := newMockOrderRepo()
	carts := newMockCartRepo()
	return &checkoutFixture{
		svc:       NewCheckoutService(checkouts, orders, carts, nil, nil, zap.NewNop()),
		checkouts: checkouts,
		orders:    orders,
		carts:     carts,
	}
}

func checkoutItems() []domain.CartItem {
	return []domain.CartItem{line("p1", "M", "blue", 10, 2)}
}

func testAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Address:    "1 Harbour St",
		City:       "Bergen",
		PostalCode: "5003",
		Country:    "NO",
	}
}

func TestCreateCheckoutStartsPending(t *testing.T) {
	f := newCheckoutFixture()

	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.PaymentStatusPending, session.PaymentStatus)
	assert.False(t, session.IsPaid)
	assert.False(t, session.IsFinalized)
	assert.Nil(t, session.PaidAt)
	assert.Equal(t, float64(20), session.TotalPrice)
}

func TestCreateCheckoutRejectsEmptyItems(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Create(context.Background(), "u1", nil, testAddress(), "stripe", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaidAcceptsOnlyLiteralPaid(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)

	for _, status := range []string{"Paid", "PAID", "pending", ""} {
		_, errPay := f.svc.MarkPaid(context.Background(), session.ID, status, nil)
		assert.ErrorIs(t, errPay, ErrInvalidInput, "status %q must be rejected", status)
	}

	// Rejected even when the session is already paid.
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "Paid", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkPaidStampsSession(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)

	details := map[string]any{"transaction_id": "tx-42"}
	paid, err := f.svc.MarkPaid(context.Background(), session.ID, "paid", details)
	require.NoError(t, err)

	assert.True(t, paid.IsPaid)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, details, paid.PaymentDetails)
	require.NotNil(t, paid.PaidAt)

	// A second confirmation is harmless and re-stamps paidAt.
	again, err := f.svc.MarkPaid(context.Background(), session.ID, "paid", details)
	require.NoError(t, err)
	assert.True(t, again.IsPaid)
	assert.False(t, again.PaidAt.Before(*paid.PaidAt))
}

func TestMarkPaidUnknownSession(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.MarkPaid(context.Background(), "missing", "paid", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkPaidUnknownSessionWinsOverBadStatus(t *testing.T) {
	f := newCheckoutFixture()

	// The missing session is reported even when the status would also be
	// rejected.
	for _, status := range []string{"Pending", "Paid", ""} {
		_, err := f.svc.MarkPaid(context.Background(), "missing", status, nil)
		assert.ErrorIs(t, err, ErrNotFound, "status %q", status)
	}
}

func TestMarkPaidRefusedAfterFinalization(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	require.NoError(t, err)
	_, err = f.svc.Finalize(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFinalizeCreatesOrderExactlyOnce(t *testing.T) {
	f := newCheckoutFixture()
	seedCart(t, f.carts, &domain.Cart{
		ID:     "user-cart",
		UserID: "u1",
		Items:  checkoutItems(),
	})

	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", map[string]any{"transaction_id": "tx-42"})
	require.NoError(t, err)

	order, err := f.svc.Finalize(context.Background(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, checkoutItems(), order.OrderItems)
	assert.Equal(t, testAddress(), order.ShippingAddress)
	assert.Equal(t, float64(20), order.TotalPrice)
	assert.True(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
	assert.NotNil(t, order.PaidAt)

	stored, err := f.checkouts.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFinalized)
	assert.NotNil(t, stored.FinalizedAt)

	// The user's cart is cleared.
	assert.Equal(t, 0, f.carts.count())

	// Second finalize conflicts and produces no second order.
	_, err = f.svc.Finalize(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, f.orders.count())
}

func TestFinalizeUnpaidSession(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)

	_, err = f.svc.Finalize(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, f.orders.count())
}

func TestFinalizeUnknownSession(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.Finalize(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinalizeToleratesCartDeleteFailure(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	require.NoError(t, err)

	f.carts.deleteErr = errors.New("store unavailable")
	order, err := f.svc.Finalize(context.Background(), session.ID)

	// Cart cleanup is best effort; the order stands.
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1, f.orders.count())
}

func TestFinalizeSurfacesOrderInsertFailure(t *testing.T) {
	f := newCheckoutFixture()
	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	require.NoError(t, err)

	f.orders.insertErr = errors.New("store unavailable")
	_, err = f.svc.Finalize(context.Background(), session.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
}

// Full happy path: stage, pay, finalize.
func TestCheckoutLifecycle(t *testing.T) {
	f := newCheckoutFixture()
	seedCart(t, f.carts, &domain.Cart{
		ID:     "user-cart",
		UserID: "u1",
		Items:  checkoutItems(),
	})

	session, err := f.svc.Create(context.Background(), "u1", checkoutItems(), testAddress(), "stripe", 20)
	require.NoError(t, err)
	assert.False(t, session.IsPaid)

	paid, err := f.svc.MarkPaid(context.Background(), session.ID, "paid", nil)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	order, err := f.svc.Finalize(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TotalPrice, order.TotalPrice)

	stored, err := f.checkouts.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFinalized)
	assert.Equal(t, 0, f.carts.count())
}
