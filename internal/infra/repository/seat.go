package repository

import (
	"context"

	"credshop/internal/domain/inventory"
	"credshop/internal/infra"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
)

type SeatRepository struct {
	db db.DBTX
}

func NewSeatRepository(dbtx db.DBTX) *SeatRepository {
	return &SeatRepository{db: dbtx}
}

// CountByUnit is the authoritative in-transaction capacity read. Calls run
// after the unit row was claimed by the booking update, so concurrent
// checkouts of the same unit are already serialized on its row lock.
func (r *SeatRepository) CountByUnit(ctx context.Context, unitID uuid.UUID) (assigned, existing int32, err error) {
	const query = `
SELECT COUNT(*) FILTER (WHERE assigned_line_id IS NOT NULL), COUNT(*)
FROM seats
WHERE unit_id = $1`

	if err := r.db.QueryRow(ctx, query, unitID).Scan(&assigned, &existing); err != nil {
		return 0, 0, infra.WrapRepoErr("failed to count seats", err)
	}
	return assigned, existing, nil
}

func (r *SeatRepository) Create(ctx context.Context, seat inventory.Seat) error {
	const stmt = `
INSERT INTO seats (id, unit_id, is_main, assigned_line_id, assigned_order_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, stmt,
		seat.ID, seat.UnitID, seat.IsMain, seat.AssignedLineID, seat.AssignedOrderID, seat.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create seat", err, repoErrKind(err))
	}
	return nil
}

func (r *SeatRepository) UnitIDsByOrder(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	const query = `SELECT DISTINCT unit_id FROM seats WHERE assigned_order_id = $1`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list seat units by order", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat unit id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read seat unit ids", err)
	}
	return ids, nil
}

func (r *SeatRepository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	const stmt = `DELETE FROM seats WHERE assigned_order_id = $1 AND is_main = FALSE`

	tag, err := r.db.Exec(ctx, stmt, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete seats by order", err)
	}
	return tag.RowsAffected(), nil
}
