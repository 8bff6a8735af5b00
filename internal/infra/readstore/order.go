package readstore

import (
	"context"
	"errors"

	"credshop/internal/infra"
	"credshop/internal/infra/db"
	"credshop/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const orderQuery = `
SELECT o.id, o.status,
       o.customer_name, o.customer_email, o.customer_phone, o.customer_address,
       o.payment_method, o.voucher_code,
       o.subtotal_cents, o.tax_cents, o.discount_cents, o.total_cents,
       p.transaction_id,
       o.expires_at, o.created_at, o.updated_at
FROM orders o
LEFT JOIN payments p ON p.order_id = o.id
WHERE o.id = $1`

	var view queries.OrderView
	err := r.db.QueryRow(ctx, orderQuery, id).Scan(
		&view.ID, &view.Status,
		&view.CustomerName, &view.CustomerEmail, &view.CustomerPhone, &view.CustomerAddress,
		&view.PaymentMethod, &view.VoucherCode,
		&view.SubtotalCents, &view.TaxCents, &view.DiscountCents, &view.TotalCents,
		&view.TransactionID,
		&view.ExpiresAt, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	const lineQuery = `
SELECT l.id, l.unit_id, u.name, l.price_cents
FROM order_lines l
JOIN units u ON u.id = l.unit_id
WHERE l.order_id = $1
ORDER BY l.created_at, l.id`

	rows, err := r.db.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.OrderLineView
		if err := rows.Scan(&line.ID, &line.UnitID, &line.UnitName, &line.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		view.Lines = append(view.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order lines", err)
	}

	return &view, nil
}
