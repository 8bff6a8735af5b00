package inventory

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	// KindProfile units are sold per individually assignable profile.
	KindProfile Kind = "profile"
	// KindFamily units share a fixed capacity of member seats.
	KindFamily Kind = "family"
)

func (k Kind) IsValid() bool {
	return k == KindProfile || k == KindFamily
}

// Unit is one sellable account. The booking fields form the checkout hold:
// IsBooked implies BookedAt/BookedUntil/BookingOrderID are all set.
type Unit struct {
	ID             uuid.UUID
	Name           string
	Kind           Kind
	IsActive       bool
	IsBooked       bool
	BookedAt       *time.Time
	BookedUntil    *time.Time
	BookingOrderID *uuid.UUID
	PriceCents     int64
	Capacity       int32
	Stock          int32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HoldExpired reports whether the unit's booking hold has outlived ttl.
// Units without a live hold are never expired.
func (u Unit) HoldExpired(now time.Time, ttl time.Duration) bool {
	if !u.IsBooked || u.BookedAt == nil {
		return false
	}
	return u.BookedAt.Before(now.Add(-ttl))
}

// Profile is one assignable identity within a profile-kind unit.
// AssignedLineID and AssignedOrderID are both null or both set.
type Profile struct {
	ID              uuid.UUID
	UnitID          uuid.UUID
	Label           string
	AssignedLineID  *uuid.UUID
	AssignedOrderID *uuid.UUID
	CreatedAt       time.Time
}

func (p Profile) Assigned() bool {
	return p.AssignedLineID != nil && p.AssignedOrderID != nil
}

// Seat is one member seat within a family-kind unit. The first seat ever
// created for a unit is the main seat; there is exactly one per unit.
type Seat struct {
	ID              uuid.UUID
	UnitID          uuid.UUID
	IsMain          bool
	AssignedLineID  *uuid.UUID
	AssignedOrderID *uuid.UUID
	CreatedAt       time.Time
}
