package inventory

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNoFreeProfiles = errors.New("no free profiles left for unit")
	ErrNoSeatsLeft    = errors.New("no member seats left for unit")
)

// ProfilePool is a FIFO free-list of unassigned profiles keyed by parent
// unit. Pop order follows insertion order, so callers feed it profiles
// sorted by id to get deterministic assignment.
type ProfilePool struct {
	free map[uuid.UUID][]Profile
}

func NewProfilePool(profiles []Profile) *ProfilePool {
	pool := &ProfilePool{free: make(map[uuid.UUID][]Profile)}
	for _, p := range profiles {
		if p.Assigned() {
			continue
		}
		pool.free[p.UnitID] = append(pool.free[p.UnitID], p)
	}
	return pool
}

func (p *ProfilePool) FreeCount(unitID uuid.UUID) int {
	return len(p.free[unitID])
}

// Pop removes and returns the oldest free profile of the unit.
func (p *ProfilePool) Pop(unitID uuid.UUID) (Profile, error) {
	queue := p.free[unitID]
	if len(queue) == 0 {
		return Profile{}, ErrNoFreeProfiles
	}
	next := queue[0]
	p.free[unitID] = queue[1:]
	return next, nil
}

// SeatCapacity tracks the remaining member seats of one family unit within a
// checkout transaction. Assigned and Existing must come from an in-transaction
// count so the capacity decision is authoritative.
type SeatCapacity struct {
	UnitID   uuid.UUID
	Capacity int32
	Assigned int32
	Existing int32
}

func (s *SeatCapacity) Remaining() int32 {
	return s.Capacity - s.Assigned
}

// Reserve claims one seat. Checkout-created seats are always member seats;
// the main seat is owned by the admin tooling that provisions the unit.
func (s *SeatCapacity) Reserve() error {
	if s.Assigned >= s.Capacity || s.Existing >= s.Capacity {
		return ErrNoSeatsLeft
	}
	s.Assigned++
	s.Existing++
	return nil
}
