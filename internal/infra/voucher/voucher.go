package voucher

import (
	"context"
	"log/slog"

	"credshop/internal/usecase/shared"
)

// PassthroughVouchers trusts the discount the external voucher collaborator
// already computed and attached to the request. It echoes the claimed amount
// back, rejecting only negative values; pricing clamps the total at zero.
type PassthroughVouchers struct{}

func NewPassthroughVouchers() shared.Vouchers {
	return &PassthroughVouchers{}
}

func (v *PassthroughVouchers) Validate(_ context.Context, code string, claimedDiscountCents int64) (int64, error) {
	if claimedDiscountCents < 0 {
		claimedDiscountCents = 0
	}
	slog.Info("voucher discount accepted as-is",
		"code", code,
		"discount_cents", claimedDiscountCents)
	return claimedDiscountCents, nil
}
