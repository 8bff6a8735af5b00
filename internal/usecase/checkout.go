package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credshop/internal/domain/inventory"
	"credshop/internal/domain/order"
	"credshop/internal/infra"
	"credshop/internal/pkg/clock"
	"credshop/internal/pkg/config"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnavailableReason string

const (
	ReasonNotFound   UnavailableReason = "not_found"
	ReasonInactive   UnavailableReason = "inactive"
	ReasonBooked     UnavailableReason = "booked"
	ReasonNoProfiles UnavailableReason = "insufficient_profiles"
	ReasonNoSeats    UnavailableReason = "out_of_stock"
)

// UnavailableError names the units a checkout cannot have, so the client can
// prune its cart and retry with the rest.
type UnavailableError struct {
	Reason  UnavailableReason
	UnitIDs []uuid.UUID
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("units unavailable (%s): %v", e.Reason, e.UnitIDs)
}

type CheckoutItem struct {
	UnitID   uuid.UUID
	Quantity int32
}

type CustomerInfo struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	PaymentMethod string
}

type CheckoutParams struct {
	Items    []CheckoutItem
	Customer CustomerInfo
	// VoucherCode and DiscountCents come from the voucher collaborator;
	// the discount is confirmed through the Vouchers port, not recomputed.
	VoucherCode   *string
	DiscountCents int64
}

type CheckoutResult struct {
	OrderID       uuid.UUID
	TransactionID string
	PaymentMethod string
	AmountCents   int64
	PaymentData   map[string]string
	ExpiresAt     time.Time
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	reclaimer ReclaimUseCase
	vouchers  shared.Vouchers
	notifier  shared.Notifier
	clock     clock.Clock
	cfg       config.CheckoutConfig
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	reclaimer ReclaimUseCase,
	vouchers shared.Vouchers,
	notifier shared.Notifier,
	clk clock.Clock,
	cfg config.CheckoutConfig,
) CheckoutUseCase {
	return &checkoutUseCaseImpl{
		uow:       uow,
		reclaimer: reclaimer,
		vouchers:  vouchers,
		notifier:  notifier,
		clock:     clk,
		cfg:       cfg,
	}
}

func (u *checkoutUseCaseImpl) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	customer, quantities, unitIDs, err := u.validateParams(params)
	if err != nil {
		return nil, err
	}

	// Lazy sweep: stale holds on the requested units are released before
	// availability is judged, so an abandoned checkout never blocks a sale.
	released, err := u.reclaimer.ReclaimExpired(ctx, unitIDs)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if released > 0 {
		slog.Info("released expired holds before checkout", "count", released)
	}

	snapshots, err := u.uow.CommandReads().UnitsForCheckout(ctx, unitIDs)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Fast-fail check for a good error message; the transaction re-checks
	// authoritatively below.
	byUnit, err := classifyAvailability(snapshots, quantities, unitIDs)
	if err != nil {
		return nil, err
	}

	discount := params.DiscountCents
	if params.VoucherCode != nil {
		discount, err = u.vouchers.Validate(ctx, *params.VoucherCode, params.DiscountCents)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidVoucher)
		}
	}

	specs := make([]order.LineSpec, 0, len(params.Items))
	for _, id := range unitIDs {
		specs = append(specs, order.LineSpec{
			UnitID:     id,
			PriceCents: byUnit[id].Unit.PriceCents,
			Quantity:   quantities[id],
		})
	}

	pricing, err := order.ComputePricing(specs, discount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	now := u.clock.Now()
	ord, err := order.NewOrder(customer, specs, pricing, params.VoucherCode, now, u.cfg.PaymentWindow)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	payment := order.Payment{
		ID:            uuid.New(),
		OrderID:       ord.ID(),
		Method:        customer.PaymentMethod(),
		AmountCents:   pricing.TotalCents,
		Status:        order.PaymentStatusPending,
		TransactionID: newTransactionID(now),
		CreatedAt:     now,
	}

	if err := u.runCheckoutTransaction(ctx, ord, payment, byUnit, unitIDs, quantities, now); err != nil {
		return nil, err
	}

	u.notifyOrderCreated(ord, byUnit)

	return &CheckoutResult{
		OrderID:       ord.ID(),
		TransactionID: payment.TransactionID,
		PaymentMethod: payment.Method,
		AmountCents:   payment.AmountCents,
		PaymentData:   u.buildPaymentData(payment),
		ExpiresAt:     ord.ExpiresAt(),
	}, nil
}

func (u *checkoutUseCaseImpl) validateParams(params CheckoutParams) (order.Customer, map[uuid.UUID]int32, []uuid.UUID, error) {
	if len(params.Items) == 0 {
		return order.Customer{}, nil, nil, errs.Mark(errs.New("cart is empty"), errs.ErrValidationFailed)
	}

	quantities := make(map[uuid.UUID]int32, len(params.Items))
	unitIDs := make([]uuid.UUID, 0, len(params.Items))
	for _, item := range params.Items {
		if item.UnitID == uuid.Nil || item.Quantity < 1 {
			return order.Customer{}, nil, nil, errs.Mark(errs.New("invalid cart item"), errs.ErrValidationFailed)
		}
		if _, seen := quantities[item.UnitID]; !seen {
			unitIDs = append(unitIDs, item.UnitID)
		}
		quantities[item.UnitID] += item.Quantity
	}

	customer, err := order.NewCustomer(
		params.Customer.Name,
		params.Customer.Email,
		params.Customer.Phone,
		params.Customer.Address,
		params.Customer.PaymentMethod,
	)
	if err != nil {
		return order.Customer{}, nil, nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	return customer, quantities, unitIDs, nil
}

// classifyAvailability applies the failure priority order: missing units
// first, then inactive, then booked, then capacity shortages. All units in
// the first failing class are reported together.
func classifyAvailability(
	snapshots []*shared.UnitSnapshot,
	quantities map[uuid.UUID]int32,
	unitIDs []uuid.UUID,
) (map[uuid.UUID]*shared.UnitSnapshot, error) {
	byUnit := make(map[uuid.UUID]*shared.UnitSnapshot, len(snapshots))
	for _, snap := range snapshots {
		byUnit[snap.Unit.ID] = snap
	}

	var missing, inactive, booked, noProfiles, noSeats []uuid.UUID
	for _, id := range unitIDs {
		snap, ok := byUnit[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		switch {
		case !snap.Unit.IsActive:
			inactive = append(inactive, id)
		case snap.Unit.IsBooked:
			booked = append(booked, id)
		case snap.Unit.Kind == inventory.KindProfile && int32(len(snap.FreeProfiles)) < quantities[id]:
			noProfiles = append(noProfiles, id)
		case snap.Unit.Kind == inventory.KindFamily &&
			(snap.AssignedSeats >= snap.Unit.Capacity || snap.ExistingSeats >= snap.Unit.Capacity):
			noSeats = append(noSeats, id)
		}
	}

	switch {
	case len(missing) > 0:
		return nil, &UnavailableError{Reason: ReasonNotFound, UnitIDs: missing}
	case len(inactive) > 0:
		return nil, &UnavailableError{Reason: ReasonInactive, UnitIDs: inactive}
	case len(booked) > 0:
		return nil, &UnavailableError{Reason: ReasonBooked, UnitIDs: booked}
	case len(noProfiles) > 0:
		return nil, &UnavailableError{Reason: ReasonNoProfiles, UnitIDs: noProfiles}
	case len(noSeats) > 0:
		return nil, &UnavailableError{Reason: ReasonNoSeats, UnitIDs: noSeats}
	}

	// Family units are sold one membership per checkout.
	for _, id := range unitIDs {
		if byUnit[id].Unit.Kind == inventory.KindFamily && quantities[id] > 1 {
			return nil, errs.Mark(errs.New("family units are limited to quantity 1"), errs.ErrValidationFailed)
		}
	}

	return byUnit, nil
}

// runCheckoutTransaction is the single atomic commit: order + lines +
// payment, the bulk booking claim, and one allocation per line. Any failure
// rolls back the whole thing.
func (u *checkoutUseCaseImpl) runCheckoutTransaction(
	ctx context.Context,
	ord *order.Order,
	payment order.Payment,
	byUnit map[uuid.UUID]*shared.UnitSnapshot,
	unitIDs []uuid.UUID,
	quantities map[uuid.UUID]int32,
	now time.Time,
) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, ord); err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		claimed, err := tx.Units().MarkBooked(ctx, unitIDs, ord.ID(), now, ord.ExpiresAt())
		if err != nil {
			return err
		}
		if claimed != int64(len(unitIDs)) {
			// Another checkout won the race on at least one unit since the
			// outer check; re-read inside the transaction for the verdict.
			return u.classifyClaimFailure(ctx, tx, ord.ID(), unitIDs, quantities)
		}

		return u.allocateLines(ctx, tx, ord, byUnit)
	})
	if err != nil {
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			return unavailable
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *checkoutUseCaseImpl) classifyClaimFailure(
	ctx context.Context,
	tx shared.Tx,
	orderID uuid.UUID,
	unitIDs []uuid.UUID,
	quantities map[uuid.UUID]int32,
) error {
	snapshots, err := tx.Reads().UnitsForCheckout(ctx, unitIDs)
	if err != nil {
		return err
	}
	// The re-read sees this transaction's own MarkBooked writes; units we
	// claimed ourselves are not conflicts.
	var contested []uuid.UUID
	for _, snap := range snapshots {
		if snap.Unit.IsBooked && snap.Unit.BookingOrderID != nil && *snap.Unit.BookingOrderID == orderID {
			snap.Unit.IsBooked = false
			continue
		}
		if snap.Unit.IsBooked {
			contested = append(contested, snap.Unit.ID)
		}
	}
	if _, err := classifyAvailability(snapshots, quantities, unitIDs); err != nil {
		return err
	}
	if len(contested) == 0 {
		contested = unitIDs
	}
	// The re-read no longer sees a conflict; treat the short claim as a
	// booking conflict so the client retries.
	return &UnavailableError{Reason: ReasonBooked, UnitIDs: contested}
}

func (u *checkoutUseCaseImpl) allocateLines(
	ctx context.Context,
	tx shared.Tx,
	ord *order.Order,
	byUnit map[uuid.UUID]*shared.UnitSnapshot,
) error {
	var profiles []inventory.Profile
	for _, snap := range byUnit {
		profiles = append(profiles, snap.FreeProfiles...)
	}
	pool := inventory.NewProfilePool(profiles)

	// Seat counts are re-read inside the transaction; the outer snapshot's
	// counts may already be stale.
	seatCaps := make(map[uuid.UUID]*inventory.SeatCapacity)
	for id, snap := range byUnit {
		if snap.Unit.Kind != inventory.KindFamily {
			continue
		}
		assigned, existing, err := tx.Seats().CountByUnit(ctx, id)
		if err != nil {
			return err
		}
		seatCaps[id] = &inventory.SeatCapacity{
			UnitID:   id,
			Capacity: snap.Unit.Capacity,
			Assigned: assigned,
			Existing: existing,
		}
	}

	orderID := ord.ID()
	for _, line := range ord.Lines() {
		snap := byUnit[line.UnitID]
		lineID := line.ID

		switch snap.Unit.Kind {
		case inventory.KindProfile:
			profile, err := pool.Pop(line.UnitID)
			if err != nil {
				return &UnavailableError{Reason: ReasonNoProfiles, UnitIDs: []uuid.UUID{line.UnitID}}
			}
			if err := tx.Profiles().Assign(ctx, profile.ID, lineID, orderID); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return &UnavailableError{Reason: ReasonNoProfiles, UnitIDs: []uuid.UUID{line.UnitID}}
				}
				return err
			}

		case inventory.KindFamily:
			seatCap := seatCaps[line.UnitID]
			if err := seatCap.Reserve(); err != nil {
				return &UnavailableError{Reason: ReasonNoSeats, UnitIDs: []uuid.UUID{line.UnitID}}
			}
			seat := inventory.Seat{
				ID:              uuid.New(),
				UnitID:          line.UnitID,
				IsMain:          false,
				AssignedLineID:  &lineID,
				AssignedOrderID: &orderID,
				CreatedAt:       u.clock.Now(),
			}
			if err := tx.Seats().Create(ctx, seat); err != nil {
				return err
			}
			if err := tx.Units().SetStock(ctx, line.UnitID, seatCap.Remaining()); err != nil {
				return err
			}
		}
	}

	return nil
}

// notifyOrderCreated fires the confirmation email outside the transaction.
// Failures are logged and swallowed: the checkout already succeeded.
func (u *checkoutUseCaseImpl) notifyOrderCreated(ord *order.Order, byUnit map[uuid.UUID]*shared.UnitSnapshot) {
	customer := ord.Customer()
	email := shared.OrderEmail{
		OrderID:       ord.ID(),
		CustomerName:  customer.Name(),
		CustomerEmail: customer.Email(),
		TotalCents:    ord.Pricing().TotalCents,
		Status:        ord.Status().String(),
	}
	for _, line := range ord.Lines() {
		email.Lines = append(email.Lines, shared.OrderEmailLine{
			UnitName:   byUnit[line.UnitID].Unit.Name,
			PriceCents: line.PriceCents,
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.notifier.SendOrderEmail(ctx, email); err != nil {
			slog.Warn("failed to send order confirmation email",
				"order_id", email.OrderID,
				"error", err.Error())
		}
	}()
}

func (u *checkoutUseCaseImpl) buildPaymentData(payment order.Payment) map[string]string {
	data := map[string]string{
		"transactionId": payment.TransactionID,
	}
	if u.cfg.BankName != "" {
		data["bankName"] = u.cfg.BankName
		data["accountNumber"] = u.cfg.BankAccount
		data["accountHolder"] = u.cfg.BankHolder
	}
	return data
}

func newTransactionID(now time.Time) string {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("TRX-%d", now.UnixNano())
	}
	return fmt.Sprintf("TRX-%s-%s", now.Format("20060102150405"), hex.EncodeToString(randomBytes))
}
