package readstore

import (
	"context"

	"credshop/internal/domain/inventory"
	"credshop/internal/infra"
	"credshop/internal/infra/db"
	"credshop/internal/usecase/shared"

	"github.com/google/uuid"
)

// InventoryReadStore serves the availability snapshots the checkout
// coordinator validates against. It runs against either the pool (fast-fail
// outer check) or a transaction (authoritative re-read).
type InventoryReadStore struct {
	db db.DBTX
}

func NewInventoryReadStore(dbtx db.DBTX) *InventoryReadStore {
	return &InventoryReadStore{db: dbtx}
}

func (r *InventoryReadStore) UnitsForCheckout(ctx context.Context, ids []uuid.UUID) ([]*shared.UnitSnapshot, error) {
	units, err := r.findUnits(ctx, ids)
	if err != nil {
		return nil, err
	}

	var profileUnits, familyUnits []uuid.UUID
	for _, u := range units {
		switch u.Kind {
		case inventory.KindProfile:
			profileUnits = append(profileUnits, u.ID)
		case inventory.KindFamily:
			familyUnits = append(familyUnits, u.ID)
		}
	}

	freeProfiles, err := r.findFreeProfiles(ctx, profileUnits)
	if err != nil {
		return nil, err
	}

	seatCounts, err := r.countSeats(ctx, familyUnits)
	if err != nil {
		return nil, err
	}

	snapshots := make([]*shared.UnitSnapshot, len(units))
	for i, u := range units {
		snap := &shared.UnitSnapshot{Unit: u}
		snap.FreeProfiles = freeProfiles[u.ID]
		if counts, ok := seatCounts[u.ID]; ok {
			snap.AssignedSeats = counts.assigned
			snap.ExistingSeats = counts.existing
		}
		snapshots[i] = snap
	}
	return snapshots, nil
}

func (r *InventoryReadStore) findUnits(ctx context.Context, ids []uuid.UUID) ([]inventory.Unit, error) {
	const query = `
SELECT id, name, kind, is_active, is_booked, booked_at, booked_until, booking_order_id,
       price_cents, capacity, stock, created_at, updated_at
FROM units
WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find units", err)
	}
	defer rows.Close()

	var units []inventory.Unit
	for rows.Next() {
		var u inventory.Unit
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Kind, &u.IsActive, &u.IsBooked, &u.BookedAt, &u.BookedUntil, &u.BookingOrderID,
			&u.PriceCents, &u.Capacity, &u.Stock, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan unit", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read units", err)
	}
	return units, nil
}

// Ordered by id so NewProfilePool's FIFO preserves the assignment order.
func (r *InventoryReadStore) findFreeProfiles(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID][]inventory.Profile, error) {
	result := make(map[uuid.UUID][]inventory.Profile)
	if len(unitIDs) == 0 {
		return result, nil
	}

	const query = `
SELECT id, unit_id, label, assigned_line_id, assigned_order_id, created_at
FROM profiles
WHERE unit_id = ANY($1)
  AND assigned_line_id IS NULL
ORDER BY unit_id, id`

	rows, err := r.db.Query(ctx, query, unitIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find free profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p inventory.Profile
		if err := rows.Scan(&p.ID, &p.UnitID, &p.Label, &p.AssignedLineID, &p.AssignedOrderID, &p.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan profile", err)
		}
		result[p.UnitID] = append(result[p.UnitID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read profiles", err)
	}
	return result, nil
}

type seatCount struct {
	assigned int32
	existing int32
}

func (r *InventoryReadStore) countSeats(ctx context.Context, unitIDs []uuid.UUID) (map[uuid.UUID]seatCount, error) {
	result := make(map[uuid.UUID]seatCount)
	if len(unitIDs) == 0 {
		return result, nil
	}

	const query = `
SELECT unit_id, COUNT(*) FILTER (WHERE assigned_line_id IS NOT NULL), COUNT(*)
FROM seats
WHERE unit_id = ANY($1)
GROUP BY unit_id`

	rows, err := r.db.Query(ctx, query, unitIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count seats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var unitID uuid.UUID
		var count seatCount
		if err := rows.Scan(&unitID, &count.assigned, &count.existing); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat counts", err)
		}
		result[unitID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read seat counts", err)
	}
	return result, nil
}
