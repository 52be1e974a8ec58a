// Package booking owns the reservation lifecycle: creating bookings
// through the allocator, expiring them when their window passes, and
// cancelling or deleting them while keeping slot state consistent.
package booking

import "errors"

// Sentinel errors returned by the lifecycle operations.  Handlers
// translate them into HTTP statuses: validation errors become 400,
// not-found errors 404 and state conflicts 409.  None of them are
// retried here; retrying is caller policy.
var (
	// ErrEndBeforeStart rejects reservations whose end time is not
	// strictly after the start time.
	ErrEndBeforeStart = errors.New("end_time must be after start_time")

	// ErrVehicleNotFound is returned when the vehicle does not exist
	// or does not belong to the requesting user.
	ErrVehicleNotFound = errors.New("vehicle not found for this user")

	// ErrReservationNotFound is returned when the reservation ID does
	// not resolve to a record.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotActive is returned when cancelling a reservation that is
	// already cancelled or completed.  State is left untouched.
	ErrNotActive = errors.New("reservation is not active")

	// ErrNoSlotAvailable is returned when no slot fits the vehicle
	// and the deployment forbids growing the facility.
	ErrNoSlotAvailable = errors.New("no slot fits the vehicle and slot creation is disabled")

	// ErrSlotContended is returned when the chosen slot was claimed
	// by a concurrent booking between selection and claim.  With
	// row-locked candidate scans this should not occur; it is kept as
	// a typed failure rather than a panic.
	ErrSlotContended = errors.New("slot was taken by a concurrent booking")
)
