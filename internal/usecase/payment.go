package usecase

import (
	"context"

	"credshop/internal/domain/order"
	"credshop/internal/infra"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentUseCase covers the status transitions driven by the payment
// collaborator. Leaving PENDING, in either direction, must release the
// booking hold of every unit the order claimed.
type PaymentUseCase interface {
	ConfirmPayment(ctx context.Context, orderID uuid.UUID) error
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
	CompleteOrder(ctx context.Context, orderID uuid.UUID) error
}

type paymentUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewPaymentUseCase(uow shared.UnitOfWork) PaymentUseCase {
	return &paymentUseCaseImpl{uow: uow}
}

func (u *paymentUseCaseImpl) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := transition(ctx, tx, orderID, order.StatusPending, order.StatusPaid); err != nil {
			return err
		}
		if _, err := tx.Units().ReleaseByOrder(ctx, orderID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Payments().UpdateStatusByOrder(ctx, orderID, order.PaymentStatusPaid); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// CancelOrder tears the checkout back down: the hold, the profile
// assignments and the member seats all go, and the family stock counters are
// recomputed from what is left.
func (u *paymentUseCaseImpl) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := transition(ctx, tx, orderID, order.StatusPending, order.StatusCancelled); err != nil {
			return err
		}
		if _, err := tx.Units().ReleaseByOrder(ctx, orderID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := tx.Profiles().ReleaseByOrder(ctx, orderID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		seatUnitIDs, err := tx.Seats().UnitIDsByOrder(ctx, orderID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := tx.Seats().DeleteByOrder(ctx, orderID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(seatUnitIDs) > 0 {
			if err := u.restoreStock(ctx, tx, seatUnitIDs); err != nil {
				return err
			}
		}

		if err := tx.Payments().UpdateStatusByOrder(ctx, orderID, order.PaymentStatusFailed); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *paymentUseCaseImpl) CompleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return transition(ctx, tx, orderID, order.StatusPaid, order.StatusCompleted)
	})
}

func transition(ctx context.Context, tx shared.Tx, orderID uuid.UUID, from, to order.Status) error {
	rows, err := tx.Orders().UpdateStatus(ctx, orderID, from, to)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rows == 0 {
		if _, statusErr := tx.Orders().Status(ctx, orderID); statusErr != nil {
			if infra.IsKind(statusErr, infra.KindNotFound) {
				return errs.ErrOrderNotFound
			}
			return errs.Mark(statusErr, errs.ErrDatabaseOperationFailed)
		}
		return errs.ErrInvalidTransition
	}
	return nil
}

func (u *paymentUseCaseImpl) restoreStock(ctx context.Context, tx shared.Tx, unitIDs []uuid.UUID) error {
	snapshots, err := tx.Reads().UnitsForCheckout(ctx, unitIDs)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, snap := range snapshots {
		assigned, _, err := tx.Seats().CountByUnit(ctx, snap.Unit.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Units().SetStock(ctx, snap.Unit.ID, snap.Unit.Capacity-assigned); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}
