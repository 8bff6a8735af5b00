package shared

import (
	"context"
	"time"

	"credshop/internal/domain/inventory"
	"credshop/internal/domain/order"
	"credshop/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Units() UnitRepository
	Orders() OrderRepository
	Profiles() ProfileRepository
	Seats() SeatRepository
	Payments() PaymentRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UnitsForCheckout(ctx context.Context, ids []uuid.UUID) ([]*UnitSnapshot, error)
}

// UnitSnapshot is the availability view of one unit: the row itself plus the
// allocation state the validator and coordinator need, fetched in one pass so
// the coordinator never re-reads outside the transaction.
type UnitSnapshot struct {
	Unit inventory.Unit
	// FreeProfiles is the FIFO-ordered (by id) unassigned profiles of a
	// profile-kind unit.
	FreeProfiles []inventory.Profile
	// AssignedSeats / ExistingSeats describe a family-kind unit's seat rows.
	AssignedSeats int32
	ExistingSeats int32
}

type UnitRepository interface {
	// MarkBooked sets the booking hold on every listed unit that is active
	// and not already booked, returning how many rows were claimed.
	MarkBooked(ctx context.Context, ids []uuid.UUID, orderID uuid.UUID, bookedAt, bookedUntil time.Time) (int64, error)
	// ReleaseExpired clears holds older than cutoff among the candidates.
	ReleaseExpired(ctx context.Context, ids []uuid.UUID, cutoff time.Time) (int64, error)
	// ReleaseAllExpired clears every hold older than cutoff.
	ReleaseAllExpired(ctx context.Context, cutoff time.Time) (int64, error)
	// ReleaseByOrder clears the hold of every unit booked by the order.
	ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	SetStock(ctx context.Context, unitID uuid.UUID, stock int32) error
}

type OrderRepository interface {
	// Create persists the order and all of its lines.
	Create(ctx context.Context, o *order.Order) error
	// Status reads the order's current status (NOT_FOUND kind when missing).
	Status(ctx context.Context, id uuid.UUID) (order.Status, error)
	// UpdateStatus moves an order from one status to another, returning the
	// number of rows matched (zero when the order is not in `from`).
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to order.Status) (int64, error)
}

type ProfileRepository interface {
	// Assign claims one specific unassigned profile for an order line.
	Assign(ctx context.Context, profileID, lineID, orderID uuid.UUID) error
	// ReleaseByOrder clears every assignment held by the order.
	ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type SeatRepository interface {
	// CountByUnit re-reads the unit's seat rows inside the transaction.
	CountByUnit(ctx context.Context, unitID uuid.UUID) (assigned, existing int32, err error)
	Create(ctx context.Context, seat inventory.Seat) error
	// UnitIDsByOrder lists the family units the order created seats in.
	UnitIDsByOrder(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
	// DeleteByOrder removes the member seats the order created.
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p order.Payment) error
	UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, status order.PaymentStatus) error
}
