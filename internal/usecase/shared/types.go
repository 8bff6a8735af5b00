package shared

import (
	"context"

	"github.com/google/uuid"
)

// Collaborator ports. Both sit outside the checkout transaction: vouchers are
// consulted before it starts, notifications fire after it commits.

type OrderEmailLine struct {
	UnitName   string
	PriceCents int64
}

type OrderEmail struct {
	OrderID       uuid.UUID
	CustomerName  string
	CustomerEmail string
	TotalCents    int64
	Status        string
	Lines         []OrderEmailLine
}

type Notifier interface {
	SendOrderEmail(ctx context.Context, email OrderEmail) error
}

type Vouchers interface {
	// Validate confirms the discount claimed for a voucher code and returns
	// the amount to apply. The returned amount is applied as-is.
	Validate(ctx context.Context, code string, claimedDiscountCents int64) (int64, error)
}
