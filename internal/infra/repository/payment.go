package repository

import (
	"context"

	"credshop/internal/domain/order"
	"credshop/internal/infra"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p order.Payment) error {
	const stmt = `
INSERT INTO payments (id, order_id, method, amount_cents, status, transaction_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, stmt,
		p.ID, p.OrderID, p.Method, p.AmountCents, string(p.Status), p.TransactionID, p.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err, repoErrKind(err))
	}
	return nil
}

func (r *PaymentRepository) UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, status order.PaymentStatus) error {
	const stmt = `UPDATE payments SET status = $2 WHERE order_id = $1`

	_, err := r.db.Exec(ctx, stmt, orderID, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	return nil
}
