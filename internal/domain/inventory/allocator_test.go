//go:build unit

package inventory_test

import (
	"testing"
	"time"

	"credshop/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeProfile(unitID uuid.UUID, label string) inventory.Profile {
	return inventory.Profile{
		ID:     uuid.New(),
		UnitID: unitID,
		Label:  label,
	}
}

func TestProfilePool(t *testing.T) {
	t.Run("pops in FIFO order per unit", func(t *testing.T) {
		unitA := uuid.New()
		unitB := uuid.New()

		first := freeProfile(unitA, "a1")
		second := freeProfile(unitA, "a2")
		other := freeProfile(unitB, "b1")

		pool := inventory.NewProfilePool([]inventory.Profile{first, second, other})

		got, err := pool.Pop(unitA)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		got, err = pool.Pop(unitA)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		got, err = pool.Pop(unitB)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)
	})

	t.Run("exhausted pool returns ErrNoFreeProfiles", func(t *testing.T) {
		unitID := uuid.New()
		pool := inventory.NewProfilePool([]inventory.Profile{freeProfile(unitID, "p1")})

		_, err := pool.Pop(unitID)
		require.NoError(t, err)

		_, err = pool.Pop(unitID)
		assert.ErrorIs(t, err, inventory.ErrNoFreeProfiles)
	})

	t.Run("assigned profiles are excluded from the free list", func(t *testing.T) {
		unitID := uuid.New()
		lineID := uuid.New()
		orderID := uuid.New()

		taken := freeProfile(unitID, "taken")
		taken.AssignedLineID = &lineID
		taken.AssignedOrderID = &orderID
		free := freeProfile(unitID, "free")

		pool := inventory.NewProfilePool([]inventory.Profile{taken, free})
		assert.Equal(t, 1, pool.FreeCount(unitID))

		got, err := pool.Pop(unitID)
		require.NoError(t, err)
		assert.Equal(t, free.ID, got.ID)
	})

	t.Run("unknown unit has no free profiles", func(t *testing.T) {
		pool := inventory.NewProfilePool(nil)
		assert.Equal(t, 0, pool.FreeCount(uuid.New()))
		_, err := pool.Pop(uuid.New())
		assert.ErrorIs(t, err, inventory.ErrNoFreeProfiles)
	})
}

func TestSeatCapacity(t *testing.T) {
	t.Run("five of six seats taken accepts exactly one more", func(t *testing.T) {
		cap := inventory.SeatCapacity{UnitID: uuid.New(), Capacity: 6, Assigned: 5, Existing: 5}

		require.NoError(t, cap.Reserve())
		assert.EqualValues(t, 0, cap.Remaining())

		assert.ErrorIs(t, cap.Reserve(), inventory.ErrNoSeatsLeft)
	})

	t.Run("full capacity rejects", func(t *testing.T) {
		cap := inventory.SeatCapacity{UnitID: uuid.New(), Capacity: 6, Assigned: 6, Existing: 6}
		assert.ErrorIs(t, cap.Reserve(), inventory.ErrNoSeatsLeft)
	})

	t.Run("row count caps seats even with unassigned rows", func(t *testing.T) {
		cap := inventory.SeatCapacity{UnitID: uuid.New(), Capacity: 2, Assigned: 1, Existing: 2}
		assert.ErrorIs(t, cap.Reserve(), inventory.ErrNoSeatsLeft)
	})
}

func TestUnitHoldExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	t.Run("old hold is expired", func(t *testing.T) {
		bookedAt := now.Add(-16 * time.Minute)
		unit := inventory.Unit{IsBooked: true, BookedAt: &bookedAt}
		assert.True(t, unit.HoldExpired(now, ttl))
	})

	t.Run("fresh hold is not expired", func(t *testing.T) {
		bookedAt := now.Add(-14 * time.Minute)
		unit := inventory.Unit{IsBooked: true, BookedAt: &bookedAt}
		assert.False(t, unit.HoldExpired(now, ttl))
	})

	t.Run("unbooked unit is never expired", func(t *testing.T) {
		old := now.Add(-time.Hour)
		unit := inventory.Unit{IsBooked: false, BookedAt: &old}
		assert.False(t, unit.HoldExpired(now, ttl))
	})
}
