// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published when a reservation is created or
// cancelled.  It is a fire-and-forget notification record: enough
// for downstream consumers to log or notify without querying the
// primary database, and never part of the lifecycle's correctness.
type ReservationEvent struct {
	Message       string `json:"message"` // "Reservation Successful" or "Reservation Cancelled"
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	SlotCode      string `json:"slot_code"`
	OccurredAt    string `json:"occurred_at"`
}
