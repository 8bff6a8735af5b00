package order

import (
	"time"

	"github.com/google/uuid"
)

// Line is one purchased instance of a unit. Quantity n of the same unit
// produces n lines.
type Line struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	UnitID     uuid.UUID
	PriceCents int64
}

type Order struct {
	id        uuid.UUID
	status    Status
	customer  Customer
	voucher   *string
	pricing   Pricing
	lines     []Line
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder expands the line specs into per-instance lines and stamps the
// payment deadline. Allocation happens later, inside the checkout
// transaction, one allocation per line in line order.
func NewOrder(
	customer Customer,
	specs []LineSpec,
	pricing Pricing,
	voucher *string,
	now time.Time,
	paymentWindow time.Duration,
) (*Order, error) {
	if len(specs) == 0 {
		return nil, ErrNoLines
	}

	id := uuid.New()
	lines := make([]Line, 0, len(specs))
	for _, spec := range specs {
		for range spec.Quantity {
			lines = append(lines, Line{
				ID:         uuid.New(),
				OrderID:    id,
				UnitID:     spec.UnitID,
				PriceCents: spec.PriceCents,
			})
		}
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	return &Order{
		id:        id,
		status:    StatusPending,
		customer:  customer,
		voucher:   voucher,
		pricing:   pricing,
		lines:     lines,
		expiresAt: now.Add(paymentWindow),
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	status Status,
	customer Customer,
	voucher *string,
	pricing Pricing,
	lines []Line,
	expiresAt, createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:        id,
		status:    status,
		customer:  customer,
		voucher:   voucher,
		pricing:   pricing,
		lines:     lines,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o *Order) IsPending() bool {
	return o.status == StatusPending
}

func (o *Order) HasExpired(now time.Time) bool {
	return now.After(o.expiresAt)
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Customer() Customer   { return o.customer }
func (o *Order) Voucher() *string     { return o.voucher }
func (o *Order) Pricing() Pricing     { return o.pricing }
func (o *Order) Lines() []Line        { return o.lines }
func (o *Order) ExpiresAt() time.Time { return o.expiresAt }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Payment is the initial payment record created with the order.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Method        string
	AmountCents   int64
	Status        PaymentStatus
	TransactionID string
	CreatedAt     time.Time
}
