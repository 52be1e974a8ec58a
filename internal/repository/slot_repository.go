package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/smart-parking/internal/model"
)

// SlotRepo provides administrative access to parking slots: adding
// them explicitly, listing them and updating occupancy status.  The
// allocate-and-reserve path does not go through this repository; it
// runs inside the transactional Store so slot claims stay atomic.
type SlotRepo struct{ DB *sql.DB }

func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{DB: db} }

// Create inserts an administratively defined slot.  The code is
// normalized to upper case.  A duplicate code yields
// ErrSlotCodeExists and an unknown area ErrAreaNotFound.
func (r *SlotRepo) Create(ctx context.Context, s *model.Slot) error {
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM parking_areas WHERE id=?", s.AreaID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrAreaNotFound
	}
	if s.Status == "" {
		s.Status = model.SlotAvailable
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO parking_slots (slot_code, length_m, width_m, status, area_id) VALUES (?,?,?,?,?)",
		s.Code, s.LengthM, s.WidthM, string(s.Status), s.AreaID)
	if err != nil {
		if isDuplicate(err) {
			return ErrSlotCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// List returns all slots, optionally restricted to one area, ordered
// by code.
func (r *SlotRepo) List(ctx context.Context, areaID *uint64) ([]model.Slot, error) {
	q := "SELECT id,slot_code,length_m,width_m,status,area_id,created_at,updated_at FROM parking_slots"
	args := []interface{}{}
	if areaID != nil {
		q += " WHERE area_id=?"
		args = append(args, *areaID)
	}
	q += " ORDER BY slot_code"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		var status string
		if err := rows.Scan(&s.ID, &s.Code, &s.LengthM, &s.WidthM, &status, &s.AreaID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Status = model.SlotStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateStatus records an occupancy change reported from outside the
// booking lifecycle (e.g. a detection feed).  Reserved slots are
// never overwritten this way; the reservation lifecycle owns them.
// It reports false when no row changed.
func (r *SlotRepo) UpdateStatus(ctx context.Context, id uint64, status model.SlotStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE parking_slots SET status=? WHERE id=? AND status<>'reserved'",
		string(status), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
