//go:build unit

package order_test

import (
	"testing"
	"time"

	"credshop/internal/domain/order"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Jane Doe", "jane@example.com", "+6281234567", "Jakarta", "bank_transfer")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	cases := []struct {
		name   string
		fields [5]string
		errIs  error
	}{
		{name: "valid", fields: [5]string{"Jane", "jane@example.com", "0812", "addr", "bank_transfer"}},
		{name: "missing name", fields: [5]string{"  ", "jane@example.com", "0812", "", "bank_transfer"}, errIs: order.ErrEmptyName},
		{name: "bad email", fields: [5]string{"Jane", "not-an-email", "0812", "", "bank_transfer"}, errIs: order.ErrInvalidEmail},
		{name: "missing phone", fields: [5]string{"Jane", "jane@example.com", "", "", "bank_transfer"}, errIs: order.ErrEmptyPhone},
		{name: "missing payment method", fields: [5]string{"Jane", "jane@example.com", "0812", "", " "}, errIs: order.ErrEmptyPaymentMethod},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := order.NewCustomer(tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3], tc.fields[4])
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	t.Run("expands quantity into repeated lines", func(t *testing.T) {
		unitA := uuid.New()
		unitB := uuid.New()
		specs := []order.LineSpec{
			{UnitID: unitA, PriceCents: 5000, Quantity: 3},
			{UnitID: unitB, PriceCents: 9000, Quantity: 1},
		}
		pricing, err := order.ComputePricing(specs, 0)
		require.NoError(t, err)

		o, err := order.NewOrder(validCustomer(t), specs, pricing, nil, now, window)
		require.NoError(t, err)

		require.Len(t, o.Lines(), 4)
		got := make([]uuid.UUID, 0, len(o.Lines()))
		prices := make([]int64, 0, len(o.Lines()))
		for _, line := range o.Lines() {
			got = append(got, line.UnitID)
			prices = append(prices, line.PriceCents)
		}
		if diff := cmp.Diff([]uuid.UUID{unitA, unitA, unitA, unitB}, got); diff != "" {
			t.Errorf("line units mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int64{5000, 5000, 5000, 9000}, prices); diff != "" {
			t.Errorf("line prices mismatch (-want +got):\n%s", diff)
		}

		seen := map[uuid.UUID]bool{}
		for _, line := range o.Lines() {
			assert.Equal(t, o.ID(), line.OrderID)
			assert.False(t, seen[line.ID], "line ids must be unique")
			seen[line.ID] = true
		}
	})

	t.Run("starts pending with the payment deadline", func(t *testing.T) {
		specs := []order.LineSpec{{UnitID: uuid.New(), PriceCents: 100, Quantity: 1}}
		pricing, err := order.ComputePricing(specs, 0)
		require.NoError(t, err)

		o, err := order.NewOrder(validCustomer(t), specs, pricing, nil, now, window)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.True(t, o.IsPending())
		assert.Equal(t, now.Add(window), o.ExpiresAt())
		assert.False(t, o.HasExpired(now.Add(window)))
		assert.True(t, o.HasExpired(now.Add(window).Add(time.Second)))
	})

	t.Run("rejects empty orders", func(t *testing.T) {
		_, err := order.NewOrder(validCustomer(t), nil, order.Pricing{}, nil, now, window)
		assert.ErrorIs(t, err, order.ErrNoLines)

		_, err = order.NewOrder(validCustomer(t), []order.LineSpec{{UnitID: uuid.New(), Quantity: 0}}, order.Pricing{}, nil, now, window)
		assert.ErrorIs(t, err, order.ErrNoLines)
	})
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, order.StatusPending.CanTransitionTo(order.StatusPaid))
	assert.True(t, order.StatusPending.CanTransitionTo(order.StatusCancelled))
	assert.True(t, order.StatusPaid.CanTransitionTo(order.StatusCompleted))

	assert.False(t, order.StatusPaid.CanTransitionTo(order.StatusCancelled))
	assert.False(t, order.StatusCompleted.CanTransitionTo(order.StatusPaid))
	assert.False(t, order.StatusCancelled.CanTransitionTo(order.StatusPending))
}
