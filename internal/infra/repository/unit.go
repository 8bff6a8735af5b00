package repository

import (
	"context"
	"time"

	"credshop/internal/infra"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
)

type UnitRepository struct {
	db db.DBTX
}

func NewUnitRepository(dbtx db.DBTX) *UnitRepository {
	return &UnitRepository{db: dbtx}
}

func (r *UnitRepository) MarkBooked(ctx context.Context, ids []uuid.UUID, orderID uuid.UUID, bookedAt, bookedUntil time.Time) (int64, error) {
	const stmt = `
UPDATE units
SET is_booked = TRUE,
    booked_at = $2,
    booked_until = $3,
    booking_order_id = $4,
    updated_at = now()
WHERE id = ANY($1)
  AND is_active
  AND is_booked = FALSE`

	tag, err := r.db.Exec(ctx, stmt, ids, bookedAt, bookedUntil, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark units booked", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnitRepository) ReleaseExpired(ctx context.Context, ids []uuid.UUID, cutoff time.Time) (int64, error) {
	const stmt = `
UPDATE units
SET is_booked = FALSE,
    booked_at = NULL,
    booked_until = NULL,
    booking_order_id = NULL,
    updated_at = now()
WHERE id = ANY($1)
  AND is_booked
  AND booked_at < $2`

	tag, err := r.db.Exec(ctx, stmt, ids, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release expired holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnitRepository) ReleaseAllExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	const stmt = `
UPDATE units
SET is_booked = FALSE,
    booked_at = NULL,
    booked_until = NULL,
    booking_order_id = NULL,
    updated_at = now()
WHERE is_booked
  AND booked_at < $1`

	tag, err := r.db.Exec(ctx, stmt, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release expired holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnitRepository) ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	const stmt = `
UPDATE units
SET is_booked = FALSE,
    booked_at = NULL,
    booked_until = NULL,
    booking_order_id = NULL,
    updated_at = now()
WHERE booking_order_id = $1
  AND is_booked`

	tag, err := r.db.Exec(ctx, stmt, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release holds by order", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UnitRepository) SetStock(ctx context.Context, unitID uuid.UUID, stock int32) error {
	const stmt = `UPDATE units SET stock = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, stmt, unitID, stock)
	if err != nil {
		return infra.WrapRepoErr("failed to update unit stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("unit not found for stock update", nil, infra.KindNotFound)
	}
	return nil
}
