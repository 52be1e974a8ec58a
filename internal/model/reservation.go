package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// A reservation starts out active and ends up either completed (its
// end time passed) or cancelled (the user gave it up).  Neither
// terminal state can be left again; deletion removes the row
// entirely rather than transitioning it.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// IsValid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationActive, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Reservation records a user's booking of a parking slot for a
// vehicle over a time window.  StartTime must be strictly before
// EndTime; this is enforced at creation and never re-checked.  At
// most one reservation may hold a given slot in reserved status at a
// time, which the allocator's available-only candidate filter
// guarantees.
//
// Fields:
//  ID        - primary key identifier.
//  UserID    - user who made the reservation.
//  VehicleID - vehicle the slot was allocated for.
//  SlotID    - allocated slot.
//  StartTime - beginning of the reserved window (UTC).
//  EndTime   - end of the reserved window (UTC).
//  Status    - lifecycle state of the reservation.
type Reservation struct {
	ID        uint64            `json:"id"`         // reservations.id
	UserID    uint64            `json:"user_id"`    // reservations.user_id
	VehicleID uint64            `json:"vehicle_id"` // reservations.vehicle_id
	SlotID    uint64            `json:"slot_id"`    // reservations.slot_id
	StartTime time.Time         `json:"-"`          // reservations.start_time
	EndTime   time.Time         `json:"-"`          // reservations.end_time
	Status    ReservationStatus `json:"status"`     // reservations.status
}
