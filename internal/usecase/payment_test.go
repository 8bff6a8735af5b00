//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"credshop/internal/domain/order"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	*checkoutFixture
	payments usecase.PaymentUseCase
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := newCheckoutFixture(t)
	return &paymentFixture{
		checkoutFixture: f,
		payments:        usecase.NewPaymentUseCase(newFakeUoW(f.store)),
	}
}

func (f *paymentFixture) placeOrder(t *testing.T, items ...usecase.CheckoutItem) *usecase.CheckoutResult {
	t.Helper()
	result, err := f.uc.Checkout(context.Background(), checkoutParams(items...))
	require.NoError(t, err)
	return result
}

func TestConfirmPayment(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 3)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})

	err := f.payments.ConfirmPayment(context.Background(), result.OrderID)
	require.NoError(t, err)

	assert.Equal(t, order.StatusPaid, f.store.statuses[result.OrderID])
	assert.False(t, f.store.units[unitID].IsBooked, "payment releases the hold")
	require.Len(t, f.store.payments, 1)
	assert.Equal(t, order.PaymentStatusPaid, f.store.payments[0].Status)

	// The profile stays with the order after payment.
	var assigned int
	for _, p := range f.store.profiles {
		if p.AssignedOrderID != nil && *p.AssignedOrderID == result.OrderID {
			assigned++
		}
	}
	assert.Equal(t, 1, assigned)
}

func TestConfirmPaymentInvalidTransition(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 3)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})

	require.NoError(t, f.payments.ConfirmPayment(context.Background(), result.OrderID))

	err := f.payments.ConfirmPayment(context.Background(), result.OrderID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.StatusPaid, f.store.statuses[result.OrderID])
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.payments.ConfirmPayment(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}

func TestCancelOrderReleasesProfileAllocation(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 3)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 2})

	err := f.payments.CancelOrder(context.Background(), result.OrderID)
	require.NoError(t, err)

	assert.Equal(t, order.StatusCancelled, f.store.statuses[result.OrderID])
	assert.False(t, f.store.units[unitID].IsBooked)
	for _, p := range f.store.profiles {
		assert.False(t, p.Assigned(), "cancel returns every profile to the pool")
	}
	require.Len(t, f.store.payments, 1)
	assert.Equal(t, order.PaymentStatusFailed, f.store.payments[0].Status)
}

func TestCancelOrderRemovesSeatsAndRestoresStock(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addFamilyUnit(20000, 6, 4)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})
	assert.EqualValues(t, 1, f.store.units[unitID].Stock)

	err := f.payments.CancelOrder(context.Background(), result.OrderID)
	require.NoError(t, err)

	for _, seat := range f.store.seats {
		if seat.AssignedOrderID != nil {
			assert.NotEqual(t, result.OrderID, *seat.AssignedOrderID)
		}
	}
	assert.EqualValues(t, 2, f.store.units[unitID].Stock, "the cancelled seat counts as free again")
}

func TestCancelOrderKeepsMainSeat(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addFamilyUnit(20000, 6, 1) // seed seat is the main seat
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})

	require.NoError(t, f.payments.CancelOrder(context.Background(), result.OrderID))

	var mains int
	for _, seat := range f.store.seats {
		if seat.UnitID == unitID && seat.IsMain {
			mains++
		}
	}
	assert.Equal(t, 1, mains)
}

func TestCancelPaidOrderRejected(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 3)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})
	require.NoError(t, f.payments.ConfirmPayment(context.Background(), result.OrderID))

	err := f.payments.CancelOrder(context.Background(), result.OrderID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	// Nothing was torn down.
	var assigned int
	for _, p := range f.store.profiles {
		if p.Assigned() {
			assigned++
		}
	}
	assert.Equal(t, 1, assigned)
}

func TestCompleteOrder(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 3)
	result := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})

	err := f.payments.CompleteOrder(context.Background(), result.OrderID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition, "pending orders cannot complete")

	require.NoError(t, f.payments.ConfirmPayment(context.Background(), result.OrderID))
	require.NoError(t, f.payments.CompleteOrder(context.Background(), result.OrderID))
	assert.Equal(t, order.StatusCompleted, f.store.statuses[result.OrderID])
}

func TestCancelledUnitIsSellableAgain(t *testing.T) {
	f := newPaymentFixture(t)
	unitID := f.addProfileUnit(5000, 1)
	first := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})

	require.NoError(t, f.payments.CancelOrder(context.Background(), first.OrderID))

	second := f.placeOrder(t, usecase.CheckoutItem{UnitID: unitID, Quantity: 1})
	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Equal(t, second.OrderID, *f.store.units[unitID].BookingOrderID)
}
