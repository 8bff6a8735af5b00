//go:build unit

package usecase_test

import (
	"context"
	"sort"
	"time"

	"credshop/internal/domain/inventory"
	"credshop/internal/domain/order"
	"credshop/internal/infra"
	"credshop/internal/infra/db"
	"credshop/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore backs the fake unit of work with copy-on-write transactions:
// Within clones the committed state, runs the callback against the clone and
// only swaps it in on success. A failed transaction therefore leaves the
// committed state byte-for-byte untouched, which is exactly the rollback
// property the checkout tests assert.
type fakeStore struct {
	units    map[uuid.UUID]inventory.Unit
	profiles []inventory.Profile
	seats    []inventory.Seat
	orders   map[uuid.UUID]*order.Order
	statuses map[uuid.UUID]order.Status
	payments []order.Payment

	// beforeWithin simulates a competing transaction that commits between
	// the outer availability check and the checkout transaction.
	beforeWithin func(*fakeState)
}

type fakeState struct {
	units    map[uuid.UUID]inventory.Unit
	profiles []inventory.Profile
	seats    []inventory.Seat
	orders   map[uuid.UUID]*order.Order
	statuses map[uuid.UUID]order.Status
	payments []order.Payment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		units:    make(map[uuid.UUID]inventory.Unit),
		orders:   make(map[uuid.UUID]*order.Order),
		statuses: make(map[uuid.UUID]order.Status),
	}
}

func (s *fakeStore) state() *fakeState {
	return &fakeState{
		units:    s.units,
		profiles: s.profiles,
		seats:    s.seats,
		orders:   s.orders,
		statuses: s.statuses,
		payments: s.payments,
	}
}

func (s *fakeState) clone() *fakeState {
	clone := &fakeState{
		units:    make(map[uuid.UUID]inventory.Unit, len(s.units)),
		profiles: append([]inventory.Profile(nil), s.profiles...),
		seats:    append([]inventory.Seat(nil), s.seats...),
		orders:   make(map[uuid.UUID]*order.Order, len(s.orders)),
		statuses: make(map[uuid.UUID]order.Status, len(s.statuses)),
		payments: append([]order.Payment(nil), s.payments...),
	}
	for id, u := range s.units {
		clone.units[id] = u
	}
	for id, o := range s.orders {
		clone.orders[id] = o
	}
	for id, st := range s.statuses {
		clone.statuses[id] = st
	}
	return clone
}

func (s *fakeStore) adopt(state *fakeState) {
	s.units = state.units
	s.profiles = state.profiles
	s.seats = state.seats
	s.orders = state.orders
	s.statuses = state.statuses
	s.payments = state.payments
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.store.beforeWithin != nil {
		// Adopt afterwards so the hook's appends survive, not just its
		// map writes.
		st := u.store.state()
		u.store.beforeWithin(st)
		u.store.adopt(st)
		u.store.beforeWithin = nil
	}

	work := u.store.state().clone()
	if err := fn(ctx, &fakeTx{state: work}); err != nil {
		return err
	}
	u.store.adopt(work)
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.store.state()}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Units() shared.UnitRepository       { return &fakeUnitRepo{state: t.state} }
func (t *fakeTx) Orders() shared.OrderRepository     { return &fakeOrderRepo{state: t.state} }
func (t *fakeTx) Profiles() shared.ProfileRepository { return &fakeProfileRepo{state: t.state} }
func (t *fakeTx) Seats() shared.SeatRepository       { return &fakeSeatRepo{state: t.state} }
func (t *fakeTx) Payments() shared.PaymentRepository { return &fakePaymentRepo{state: t.state} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{state: t.state} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeUnitRepo struct {
	state *fakeState
}

func (r *fakeUnitRepo) MarkBooked(_ context.Context, ids []uuid.UUID, orderID uuid.UUID, bookedAt, bookedUntil time.Time) (int64, error) {
	var claimed int64
	for _, id := range ids {
		u, ok := r.state.units[id]
		if !ok || !u.IsActive || u.IsBooked {
			continue
		}
		at := bookedAt
		until := bookedUntil
		oid := orderID
		u.IsBooked = true
		u.BookedAt = &at
		u.BookedUntil = &until
		u.BookingOrderID = &oid
		r.state.units[id] = u
		claimed++
	}
	return claimed, nil
}

func (r *fakeUnitRepo) ReleaseExpired(_ context.Context, ids []uuid.UUID, cutoff time.Time) (int64, error) {
	var released int64
	for _, id := range ids {
		u, ok := r.state.units[id]
		if !ok || !u.IsBooked || u.BookedAt == nil || !u.BookedAt.Before(cutoff) {
			continue
		}
		u.IsBooked = false
		u.BookedAt = nil
		u.BookedUntil = nil
		u.BookingOrderID = nil
		r.state.units[id] = u
		released++
	}
	return released, nil
}

func (r *fakeUnitRepo) ReleaseAllExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	ids := make([]uuid.UUID, 0, len(r.state.units))
	for id := range r.state.units {
		ids = append(ids, id)
	}
	return r.ReleaseExpired(ctx, ids, cutoff)
}

func (r *fakeUnitRepo) ReleaseByOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	var released int64
	for id, u := range r.state.units {
		if !u.IsBooked || u.BookingOrderID == nil || *u.BookingOrderID != orderID {
			continue
		}
		u.IsBooked = false
		u.BookedAt = nil
		u.BookedUntil = nil
		u.BookingOrderID = nil
		r.state.units[id] = u
		released++
	}
	return released, nil
}

func (r *fakeUnitRepo) SetStock(_ context.Context, unitID uuid.UUID, stock int32) error {
	u, ok := r.state.units[unitID]
	if !ok {
		return infra.WrapRepoErr("unit not found", nil, infra.KindNotFound)
	}
	u.Stock = stock
	r.state.units[unitID] = u
	return nil
}

// liveUnitRepo operates on the committed store at call time, so a reclaimer
// built once keeps seeing states adopted by later transactions.
type liveUnitRepo struct {
	store *fakeStore
}

func (r *liveUnitRepo) MarkBooked(ctx context.Context, ids []uuid.UUID, orderID uuid.UUID, bookedAt, bookedUntil time.Time) (int64, error) {
	return (&fakeUnitRepo{state: r.store.state()}).MarkBooked(ctx, ids, orderID, bookedAt, bookedUntil)
}

func (r *liveUnitRepo) ReleaseExpired(ctx context.Context, ids []uuid.UUID, cutoff time.Time) (int64, error) {
	return (&fakeUnitRepo{state: r.store.state()}).ReleaseExpired(ctx, ids, cutoff)
}

func (r *liveUnitRepo) ReleaseAllExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return (&fakeUnitRepo{state: r.store.state()}).ReleaseAllExpired(ctx, cutoff)
}

func (r *liveUnitRepo) ReleaseByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return (&fakeUnitRepo{state: r.store.state()}).ReleaseByOrder(ctx, orderID)
}

func (r *liveUnitRepo) SetStock(ctx context.Context, unitID uuid.UUID, stock int32) error {
	return (&fakeUnitRepo{state: r.store.state()}).SetStock(ctx, unitID, stock)
}

type fakeOrderRepo struct {
	state *fakeState
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.state.orders[o.ID()] = o
	r.state.statuses[o.ID()] = o.Status()
	return nil
}

func (r *fakeOrderRepo) Status(_ context.Context, id uuid.UUID) (order.Status, error) {
	status, ok := r.state.statuses[id]
	if !ok {
		return "", infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return status, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to order.Status) (int64, error) {
	if r.state.statuses[id] != from {
		return 0, nil
	}
	r.state.statuses[id] = to
	return 1, nil
}

type fakeProfileRepo struct {
	state *fakeState
}

func (r *fakeProfileRepo) Assign(_ context.Context, profileID, lineID, orderID uuid.UUID) error {
	for i, p := range r.state.profiles {
		if p.ID != profileID {
			continue
		}
		if p.AssignedLineID != nil {
			return infra.WrapRepoErr("profile already assigned", nil, infra.KindConflict)
		}
		lid := lineID
		oid := orderID
		r.state.profiles[i].AssignedLineID = &lid
		r.state.profiles[i].AssignedOrderID = &oid
		return nil
	}
	return infra.WrapRepoErr("profile not found", nil, infra.KindNotFound)
}

func (r *fakeProfileRepo) ReleaseByOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	var released int64
	for i, p := range r.state.profiles {
		if p.AssignedOrderID == nil || *p.AssignedOrderID != orderID {
			continue
		}
		r.state.profiles[i].AssignedLineID = nil
		r.state.profiles[i].AssignedOrderID = nil
		released++
	}
	return released, nil
}

type fakeSeatRepo struct {
	state *fakeState
}

func (r *fakeSeatRepo) CountByUnit(_ context.Context, unitID uuid.UUID) (assigned, existing int32, err error) {
	for _, seat := range r.state.seats {
		if seat.UnitID != unitID {
			continue
		}
		existing++
		if seat.AssignedLineID != nil {
			assigned++
		}
	}
	return assigned, existing, nil
}

func (r *fakeSeatRepo) Create(_ context.Context, seat inventory.Seat) error {
	r.state.seats = append(r.state.seats, seat)
	return nil
}

func (r *fakeSeatRepo) UnitIDsByOrder(_ context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, seat := range r.state.seats {
		if seat.AssignedOrderID == nil || *seat.AssignedOrderID != orderID || seen[seat.UnitID] {
			continue
		}
		seen[seat.UnitID] = true
		ids = append(ids, seat.UnitID)
	}
	return ids, nil
}

func (r *fakeSeatRepo) DeleteByOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	var kept []inventory.Seat
	var deleted int64
	for _, seat := range r.state.seats {
		if !seat.IsMain && seat.AssignedOrderID != nil && *seat.AssignedOrderID == orderID {
			deleted++
			continue
		}
		kept = append(kept, seat)
	}
	r.state.seats = kept
	return deleted, nil
}

type fakePaymentRepo struct {
	state *fakeState
}

func (r *fakePaymentRepo) Create(_ context.Context, p order.Payment) error {
	r.state.payments = append(r.state.payments, p)
	return nil
}

func (r *fakePaymentRepo) UpdateStatusByOrder(_ context.Context, orderID uuid.UUID, status order.PaymentStatus) error {
	for i, p := range r.state.payments {
		if p.OrderID == orderID {
			r.state.payments[i].Status = status
		}
	}
	return nil
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) UnitsForCheckout(_ context.Context, ids []uuid.UUID) ([]*shared.UnitSnapshot, error) {
	var snapshots []*shared.UnitSnapshot
	for _, id := range ids {
		u, ok := r.state.units[id]
		if !ok {
			continue
		}
		snap := &shared.UnitSnapshot{Unit: u}
		for _, p := range r.state.profiles {
			if p.UnitID == id && !p.Assigned() {
				snap.FreeProfiles = append(snap.FreeProfiles, p)
			}
		}
		sort.Slice(snap.FreeProfiles, func(i, j int) bool {
			return snap.FreeProfiles[i].ID.String() < snap.FreeProfiles[j].ID.String()
		})
		for _, seat := range r.state.seats {
			if seat.UnitID != id {
				continue
			}
			snap.ExistingSeats++
			if seat.AssignedLineID != nil {
				snap.AssignedSeats++
			}
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

type fakeNotifier struct {
	sent []shared.OrderEmail
	err  error
	done chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 8)}
}

func (n *fakeNotifier) SendOrderEmail(_ context.Context, email shared.OrderEmail) error {
	n.sent = append(n.sent, email)
	n.done <- struct{}{}
	return n.err
}

type fakeVouchers struct {
	discount int64
	err      error
	calls    []string
}

func (v *fakeVouchers) Validate(_ context.Context, code string, _ int64) (int64, error) {
	v.calls = append(v.calls, code)
	if v.err != nil {
		return 0, v.err
	}
	return v.discount, nil
}
