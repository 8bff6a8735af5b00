package order

import (
	"math"

	"github.com/google/uuid"
)

// TaxRate is the VAT applied on the subtotal.
const TaxRate = 0.11

// LineSpec is one requested unit with its quantity, before expansion into
// per-instance order lines.
type LineSpec struct {
	UnitID     uuid.UUID
	PriceCents int64
	Quantity   int32
}

type Pricing struct {
	SubtotalCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
}

// ComputePricing derives subtotal/tax/total from the requested lines and a
// pre-computed voucher discount. The discount is trusted as-is; the total is
// clamped at zero.
func ComputePricing(lines []LineSpec, discountCents int64) (Pricing, error) {
	if discountCents < 0 {
		return Pricing{}, ErrNegativeDiscount
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.PriceCents * int64(line.Quantity)
	}

	tax := int64(math.Round(float64(subtotal) * TaxRate))

	total := subtotal + tax - discountCents
	if total < 0 {
		total = 0
	}

	return Pricing{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		DiscountCents: discountCents,
		TotalCents:    total,
	}, nil
}
