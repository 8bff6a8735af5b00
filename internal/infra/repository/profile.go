package repository

import (
	"context"

	"credshop/internal/infra"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
)

type ProfileRepository struct {
	db db.DBTX
}

func NewProfileRepository(dbtx db.DBTX) *ProfileRepository {
	return &ProfileRepository{db: dbtx}
}

// Assign guards with assigned_line_id IS NULL so a profile the outer
// validator saw as free but another transaction claimed meanwhile surfaces
// as a conflict, not a double sale.
func (r *ProfileRepository) Assign(ctx context.Context, profileID, lineID, orderID uuid.UUID) error {
	const stmt = `
UPDATE profiles
SET assigned_line_id = $2, assigned_order_id = $3
WHERE id = $1 AND assigned_line_id IS NULL`

	tag, err := r.db.Exec(ctx, stmt, profileID, lineID, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to assign profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("profile already assigned", nil, infra.KindConflict)
	}
	return nil
}

func (r *ProfileRepository) ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	const stmt = `
UPDATE profiles
SET assigned_line_id = NULL, assigned_order_id = NULL
WHERE assigned_order_id = $1`

	tag, err := r.db.Exec(ctx, stmt, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release profiles by order", err)
	}
	return tag.RowsAffected(), nil
}
