package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/smart-parking/internal/booking"
	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// BookingStore implements booking.Store on MySQL.  Every lifecycle
// operation runs inside one database transaction; the candidate slot
// scan locks rows FOR UPDATE so that two concurrent bookings can
// never select the same slot before either commits.
type BookingStore struct{ DB *sql.DB }

func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{DB: db} }

// Within begins a transaction, runs fn against it and commits when
// fn returns nil.  Any error, including a failed commit, rolls the
// whole unit back, so a slot marked reserved without its reservation
// row can never be observed.
func (s *BookingStore) Within(ctx context.Context, fn func(tx booking.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns reservation details for the user, newest id
// first, joining in the slot code and vehicle plate.
func (s *BookingStore) ListByUser(ctx context.Context, userID uint64, activeOnly bool) ([]booking.Detail, error) {
	q := `SELECT r.id, r.vehicle_id, r.slot_id, r.status, r.start_time, r.end_time,
	             ps.slot_code, v.plate_number
	      FROM reservations r
	      JOIN parking_slots ps ON ps.id = r.slot_id
	      JOIN vehicles v ON v.id = r.vehicle_id
	      WHERE r.user_id = ?`
	args := []interface{}{userID}
	if activeOnly {
		q += " AND r.status = 'active'"
	}
	q += " ORDER BY r.id DESC"
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]booking.Detail, 0)
	for rows.Next() {
		var d booking.Detail
		var status string
		var start, end time.Time
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.SlotID, &status, &start, &end, &d.SlotCode, &d.Plate); err != nil {
			return nil, err
		}
		d.Status = model.ReservationStatus(status)
		d.StartTime = utils.FormatTimestamp(start)
		d.EndTime = utils.FormatTimestamp(end)
		out = append(out, d)
	}
	return out, rows.Err()
}

// bookingTx adapts one *sql.Tx to the booking.Tx interface.
type bookingTx struct{ tx *sql.Tx }

func (t *bookingTx) VehicleForUser(ctx context.Context, vehicleID, userID uint64) (model.Vehicle, error) {
	var v model.Vehicle
	err := t.tx.QueryRowContext(ctx,
		"SELECT id,user_id,plate_number,vehicle_type,length_m,width_m FROM vehicles WHERE id=? AND user_id=? LIMIT 1",
		vehicleID, userID).Scan(&v.ID, &v.UserID, &v.PlateNumber, &v.VehicleType, &v.LengthM, &v.WidthM)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vehicle{}, booking.ErrVehicleNotFound
	}
	return v, err
}

func (t *bookingTx) DueReservations(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	rows, err := t.tx.QueryContext(ctx,
		"SELECT id,user_id,vehicle_id,slot_id,start_time,end_time FROM reservations WHERE status='active' AND end_time <= ? FOR UPDATE",
		now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		r := model.Reservation{Status: model.ReservationActive}
		if err := rows.Scan(&r.ID, &r.UserID, &r.VehicleID, &r.SlotID, &r.StartTime, &r.EndTime); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *bookingTx) CompleteReservation(ctx context.Context, id uint64) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE reservations SET status='completed' WHERE id=? AND status='active'", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *bookingTx) ReservationByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var r model.Reservation
	var status string
	err := t.tx.QueryRowContext(ctx,
		"SELECT id,user_id,vehicle_id,slot_id,start_time,end_time,status FROM reservations WHERE id=? LIMIT 1 FOR UPDATE",
		id).Scan(&r.ID, &r.UserID, &r.VehicleID, &r.SlotID, &r.StartTime, &r.EndTime, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, booking.ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	r.Status = model.ReservationStatus(status)
	return r, nil
}

func (t *bookingTx) CreateReservation(ctx context.Context, r *model.Reservation) error {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, vehicle_id, slot_id, start_time, end_time, status) VALUES (?,?,?,?,?,?)",
		r.UserID, r.VehicleID, r.SlotID, r.StartTime, r.EndTime, string(r.Status))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

func (t *bookingTx) SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status=?",
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *bookingTx) DeleteReservation(ctx context.Context, id uint64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	return err
}

func (t *bookingTx) AvailableSlotsForUpdate(ctx context.Context, areaID *uint64) ([]model.Slot, error) {
	q := "SELECT id,slot_code,length_m,width_m,area_id FROM parking_slots WHERE status='available'"
	args := []interface{}{}
	if areaID != nil {
		q += " AND area_id=?"
		args = append(args, *areaID)
	}
	// Stable id order makes the best-fit tie-break reproducible.
	q += " ORDER BY id FOR UPDATE"
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Slot
	for rows.Next() {
		s := model.Slot{Status: model.SlotAvailable}
		if err := rows.Scan(&s.ID, &s.Code, &s.LengthM, &s.WidthM, &s.AreaID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (t *bookingTx) SlotCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx,
		"SELECT slot_code FROM parking_slots WHERE slot_code LIKE CONCAT(?, '%')", prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (t *bookingTx) SlotByID(ctx context.Context, id uint64) (model.Slot, error) {
	var s model.Slot
	var status string
	err := t.tx.QueryRowContext(ctx,
		"SELECT id,slot_code,length_m,width_m,status,area_id FROM parking_slots WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Code, &s.LengthM, &s.WidthM, &status, &s.AreaID)
	if err != nil {
		return model.Slot{}, err
	}
	s.Status = model.SlotStatus(status)
	return s, nil
}

func (t *bookingTx) CreateSlot(ctx context.Context, s *model.Slot) error {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO parking_slots (slot_code, length_m, width_m, status, area_id) VALUES (?,?,?,?,?)",
		s.Code, s.LengthM, s.WidthM, string(s.Status), s.AreaID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

func (t *bookingTx) ClaimSlot(ctx context.Context, id uint64) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE parking_slots SET status='reserved' WHERE id=? AND status='available'", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *bookingTx) FreeSlot(ctx context.Context, id uint64) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE parking_slots SET status='available' WHERE id=? AND status='reserved'", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *bookingTx) EnsureArea(ctx context.Context, id uint64) error {
	var n int
	if err := t.tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM parking_areas WHERE id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO parking_areas (id, name) VALUES (?, CONCAT('Area ', ?))", id, id)
	return err
}
