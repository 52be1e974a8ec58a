package booking

import (
	"context"
	"time"

	"github.com/iliyamo/smart-parking/internal/allocator"
	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// Service is the reservation lifecycle manager.  All state
// transitions of reservations and their slots go through it; route
// queries and plain CRUD do not.
type Service struct {
	store    Store
	notifier Notifier // may be nil
	// AllowGrowth controls slot synthesis.  When false, allocation
	// fails with ErrNoSlotAvailable instead of growing the facility.
	AllowGrowth bool

	now func() time.Time
}

// New constructs a Service.  The notifier may be nil, in which case
// no events are emitted.  Growth is allowed by default.
func New(store Store, notifier Notifier) *Service {
	return &Service{
		store:       store,
		notifier:    notifier,
		AllowGrowth: true,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateResult reports the outcome of Create.  SlotCreated tells the
// caller that no existing slot fit and the facility was grown, so an
// administrator can be surfaced the new code.
type CreateResult struct {
	Reservation model.Reservation
	SlotCode    string
	SlotCreated bool
}

// Create books a slot for the user's vehicle over [start, end).  It
// validates ownership and the time window, runs the expiry sweep,
// selects a best-fit slot (synthesizing one when nothing fits),
// claims it and persists the active reservation, all inside a single
// transaction.  areaID optionally restricts the slot search.
func (s *Service) Create(ctx context.Context, userID, vehicleID uint64, start, end string, areaID *uint64) (CreateResult, error) {
	startAt, err := utils.ParseTimestamp(start)
	if err != nil {
		return CreateResult{}, err
	}
	endAt, err := utils.ParseTimestamp(end)
	if err != nil {
		return CreateResult{}, err
	}
	if !endAt.After(startAt) {
		return CreateResult{}, ErrEndBeforeStart
	}

	var out CreateResult
	err = s.store.Within(ctx, func(tx Tx) error {
		vehicle, err := tx.VehicleForUser(ctx, vehicleID, userID)
		if err != nil {
			return err
		}
		if err := s.sweep(ctx, tx); err != nil {
			return err
		}
		slots, err := tx.AvailableSlotsForUpdate(ctx, areaID)
		if err != nil {
			return err
		}
		chosen, ok := allocator.BestFit(slots, vehicle.LengthM, vehicle.WidthM)
		if !ok {
			if !s.AllowGrowth {
				return ErrNoSlotAvailable
			}
			codes, err := tx.SlotCodes(ctx, allocator.DefaultCodePrefix)
			if err != nil {
				return err
			}
			if err := tx.EnsureArea(ctx, model.DefaultAreaID); err != nil {
				return err
			}
			chosen = allocator.Synthesize(vehicle.LengthM, vehicle.WidthM, model.DefaultAreaID)
			chosen.Code = allocator.NextCode(codes, allocator.DefaultCodePrefix)
			if err := tx.CreateSlot(ctx, &chosen); err != nil {
				return err
			}
			out.SlotCreated = true
		}
		claimed, err := tx.ClaimSlot(ctx, chosen.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrSlotContended
		}
		res := model.Reservation{
			UserID:    userID,
			VehicleID: vehicleID,
			SlotID:    chosen.ID,
			StartTime: startAt,
			EndTime:   endAt,
			Status:    model.ReservationActive,
		}
		if err := tx.CreateReservation(ctx, &res); err != nil {
			return err
		}
		out.Reservation = res
		out.SlotCode = chosen.Code
		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}
	s.notify(ctx, "Reservation Successful", out.Reservation, out.SlotCode)
	return out, nil
}

// Cancel moves an active reservation to cancelled and frees its slot
// when the slot is still in reserved status.  Cancelling a
// non-active reservation fails with ErrNotActive and changes
// nothing.  A non-zero userID scopes the operation to reservations
// owned by that user; others report ErrReservationNotFound rather
// than reveal that the ID exists.
func (s *Service) Cancel(ctx context.Context, reservationID, userID uint64) error {
	var cancelled model.Reservation
	var code string
	err := s.store.Within(ctx, func(tx Tx) error {
		if err := s.sweep(ctx, tx); err != nil {
			return err
		}
		r, err := tx.ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if userID != 0 && r.UserID != userID {
			return ErrReservationNotFound
		}
		if r.Status != model.ReservationActive {
			return ErrNotActive
		}
		moved, err := tx.SetReservationStatus(ctx, r.ID, model.ReservationActive, model.ReservationCancelled)
		if err != nil {
			return err
		}
		if !moved {
			return ErrNotActive
		}
		// An occupied slot stays occupied: whatever is parked there
		// is not this booking's business.
		if _, err := tx.FreeSlot(ctx, r.SlotID); err != nil {
			return err
		}
		if slot, err := tx.SlotByID(ctx, r.SlotID); err == nil {
			code = slot.Code
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(ctx, "Reservation Cancelled", cancelled, code)
	return nil
}

// Delete removes the reservation record entirely.  Unlike Cancel it
// succeeds for any status; when the reservation was still active its
// slot is freed first.  userID scopes ownership the same way Cancel
// does.
func (s *Service) Delete(ctx context.Context, reservationID, userID uint64) error {
	return s.store.Within(ctx, func(tx Tx) error {
		if err := s.sweep(ctx, tx); err != nil {
			return err
		}
		r, err := tx.ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if userID != 0 && r.UserID != userID {
			return ErrReservationNotFound
		}
		if r.Status == model.ReservationActive {
			if _, err := tx.FreeSlot(ctx, r.SlotID); err != nil {
				return err
			}
		}
		return tx.DeleteReservation(ctx, r.ID)
	})
}

// ListForUser returns the user's reservations, newest first.  The
// expiry sweep runs first so listings never show a stale active
// reservation whose window already passed.
func (s *Service) ListForUser(ctx context.Context, userID uint64, activeOnly bool) ([]Detail, error) {
	if err := s.Sweep(ctx); err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, userID, activeOnly)
}

// Sweep runs the expiry sweep in its own transaction.  Other
// read-side entry points (slot listings, guidance pages) call this
// before serving so expired reservations never pin slots.  The sweep
// is idempotent: with nothing due it writes nothing.
func (s *Service) Sweep(ctx context.Context) error {
	return s.store.Within(ctx, func(tx Tx) error {
		return s.sweep(ctx, tx)
	})
}

// sweep completes every active reservation whose end time has
// passed and frees its slot if the slot is still reserved.  A
// reservation raced by a concurrent sweep reports no transition and
// is skipped without touching its slot a second time.
func (s *Service) sweep(ctx context.Context, tx Tx) error {
	due, err := tx.DueReservations(ctx, s.now())
	if err != nil {
		return err
	}
	for _, r := range due {
		moved, err := tx.CompleteReservation(ctx, r.ID)
		if err != nil {
			return err
		}
		if !moved {
			continue
		}
		if _, err := tx.FreeSlot(ctx, r.SlotID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) notify(ctx context.Context, msg string, r model.Reservation, code string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, Event{
		Message:       msg,
		ReservationID: r.ID,
		UserID:        r.UserID,
		SlotCode:      code,
		OccurredAt:    utils.FormatTimestamp(s.now()),
	})
}
