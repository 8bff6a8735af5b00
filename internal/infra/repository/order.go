package repository

import (
	"context"
	"errors"

	"credshop/internal/domain/order"
	"credshop/internal/infra"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

func repoErrKind(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const orderStmt = `
INSERT INTO orders (
	id, status,
	customer_name, customer_email, customer_phone, customer_address,
	payment_method, voucher_code,
	subtotal_cents, tax_cents, discount_cents, total_cents,
	expires_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	customer := o.Customer()
	pricing := o.Pricing()

	_, err := r.db.Exec(ctx, orderStmt,
		o.ID(),
		o.Status().String(),
		customer.Name(),
		customer.Email(),
		customer.Phone(),
		customer.Address(),
		customer.PaymentMethod(),
		o.Voucher(),
		pricing.SubtotalCents,
		pricing.TaxCents,
		pricing.DiscountCents,
		pricing.TotalCents,
		o.ExpiresAt(),
		o.CreatedAt(),
		o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err, repoErrKind(err))
	}

	const lineStmt = `
INSERT INTO order_lines (id, order_id, unit_id, price_cents, created_at)
VALUES ($1, $2, $3, $4, $5)`

	for _, line := range o.Lines() {
		if _, err := r.db.Exec(ctx, lineStmt, line.ID, line.OrderID, line.UnitID, line.PriceCents, o.CreatedAt()); err != nil {
			return infra.WrapRepoErr("failed to create order line", err, repoErrKind(err))
		}
	}

	return nil
}

func (r *OrderRepository) Status(ctx context.Context, id uuid.UUID) (order.Status, error) {
	const query = `SELECT status FROM orders WHERE id = $1`

	var status string
	if err := r.db.QueryRow(ctx, query, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to read order status", err)
	}
	return order.Status(status), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) (int64, error) {
	const stmt = `
UPDATE orders
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, stmt, id, from.String(), to.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update order status", err)
	}
	return tag.RowsAffected(), nil
}
