package booking

import (
	"context"
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
)

// Tx is the transactional view the lifecycle operates on.  Every
// lifecycle operation runs its reads and writes against a single Tx
// so that the allocate-and-reserve sequence is atomic: two
// concurrent bookings can never claim the same slot.  The MySQL
// implementation backs this with a database transaction whose
// candidate scan locks rows FOR UPDATE.
type Tx interface {
	// VehicleForUser returns the vehicle only when it is owned by the
	// given user; otherwise ErrVehicleNotFound.
	VehicleForUser(ctx context.Context, vehicleID, userID uint64) (model.Vehicle, error)

	// DueReservations lists active reservations whose end time is at
	// or before now.
	DueReservations(ctx context.Context, now time.Time) ([]model.Reservation, error)
	// CompleteReservation moves an active reservation to completed.
	// It reports false when the reservation was no longer active,
	// which a concurrent sweep may have caused; callers treat that as
	// a no-op.
	CompleteReservation(ctx context.Context, id uint64) (bool, error)
	// ReservationByID returns ErrReservationNotFound for unknown IDs.
	ReservationByID(ctx context.Context, id uint64) (model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	// SetReservationStatus transitions id from one status to another,
	// reporting whether a row actually changed.
	SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (bool, error)
	DeleteReservation(ctx context.Context, id uint64) error

	// AvailableSlotsForUpdate returns all available slots, optionally
	// restricted to an area, with their rows locked until the
	// transaction ends.
	AvailableSlotsForUpdate(ctx context.Context, areaID *uint64) ([]model.Slot, error)
	// SlotCodes returns every slot code starting with prefix.
	SlotCodes(ctx context.Context, prefix string) ([]string, error)
	// SlotByID returns the slot row for id.
	SlotByID(ctx context.Context, id uint64) (model.Slot, error)
	CreateSlot(ctx context.Context, s *model.Slot) error
	// ClaimSlot atomically moves an available slot to reserved and
	// reports whether the claim won.
	ClaimSlot(ctx context.Context, id uint64) (bool, error)
	// FreeSlot moves a reserved slot back to available.  Slots in any
	// other status, including occupied, are left alone and false is
	// returned.
	FreeSlot(ctx context.Context, id uint64) (bool, error)
	// EnsureArea creates the area row when it does not exist yet, so
	// synthesized slots always have a home.
	EnsureArea(ctx context.Context, id uint64) error
}

// Store hands out transactional scopes and answers read-only listing
// queries.
type Store interface {
	// Within runs fn inside one transaction, committing when fn
	// returns nil and rolling back otherwise.
	Within(ctx context.Context, fn func(tx Tx) error) error
	// ListByUser returns reservation details for a user ordered
	// newest-id-first.  With activeOnly set, cancelled and completed
	// rows are filtered out.
	ListByUser(ctx context.Context, userID uint64, activeOnly bool) ([]Detail, error)
}

// Detail is the reservation view returned to clients: the raw row
// joined with its slot code and vehicle plate, timestamps rendered
// in the canonical minute-precision form.
type Detail struct {
	ID        uint64                  `json:"id"`
	VehicleID uint64                  `json:"vehicle_id"`
	SlotID    uint64                  `json:"slot_id"`
	SlotCode  string                  `json:"slot"`
	Plate     string                  `json:"plate"`
	Status    model.ReservationStatus `json:"status"`
	StartTime string                  `json:"start_time"`
	EndTime   string                  `json:"end_time"`
}

// Event is the fire-and-forget notification emitted after a
// successful lifecycle operation.
type Event struct {
	Message       string `json:"message"`
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	SlotCode      string `json:"slot_code"`
	OccurredAt    string `json:"occurred_at"`
}

// Notifier delivers events to interested consumers.  Failures are
// the notifier's problem; the lifecycle never blocks or fails on
// notification.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}
