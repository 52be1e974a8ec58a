package model

import "time"

// SlotStatus enumerates the states a parking slot can be in.  The
// zero value is not valid; every slot row carries one of the three
// constants below.  Transitions are owned by the allocation and
// booking layers: allocation moves a slot from available to
// reserved, the booking lifecycle frees it again, and the occupancy
// feed may flip between available and occupied.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available" // slot is free and can be allocated
	SlotReserved  SlotStatus = "reserved"  // slot is held by an active reservation
	SlotOccupied  SlotStatus = "occupied"  // a vehicle is physically present
)

// IsValid reports whether s is one of the known slot statuses.
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotAvailable, SlotReserved, SlotOccupied:
		return true
	}
	return false
}

// Slot describes a single parking slot.  Slots are uniquely
// identified by their code (e.g. "A12").  Dimensions are in meters
// and must both be positive.  A slot is created either by an
// administrator or synthesized on demand by the allocator when no
// existing slot fits a vehicle.
//
// Fields:
//  ID       - primary key identifier.
//  Code     - unique, stable slot code such as "A12".
//  LengthM  - usable length of the slot in meters.
//  WidthM   - usable width of the slot in meters.
//  AreaID   - parking area this slot belongs to.
//  Status   - current slot status.
//  CreatedAt - creation timestamp.
//  UpdatedAt - last update timestamp.
type Slot struct {
	ID        uint64     `json:"id"`         // parking_slots.id
	Code      string     `json:"slot_code"`  // parking_slots.slot_code
	LengthM   float64    `json:"length_m"`   // parking_slots.length_m
	WidthM    float64    `json:"width_m"`    // parking_slots.width_m
	AreaID    uint64     `json:"area_id"`    // parking_slots.area_id
	Status    SlotStatus `json:"status"`     // parking_slots.status
	CreatedAt time.Time  `json:"-"`          // parking_slots.created_at
	UpdatedAt time.Time  `json:"-"`          // parking_slots.updated_at
}

// Area reports the floor area of the slot in square meters.  The
// allocator orders fitting candidates by this value to implement
// best-fit selection.
func (s Slot) Area() float64 { return s.LengthM * s.WidthM }

// Fits reports whether a vehicle with the given footprint fits in
// the slot.  Both dimensions must fit; rotating the vehicle inside
// the slot is not considered.
func (s Slot) Fits(lengthM, widthM float64) bool {
	return s.LengthM >= lengthM && s.WidthM >= widthM
}
