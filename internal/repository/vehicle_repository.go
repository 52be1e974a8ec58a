package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/smart-parking/internal/model"
)

// VehicleRepo provides CRUD operations for registered vehicles.
// Ownership is part of every query: a vehicle is only ever visible
// to, and deletable by, the user it belongs to.
type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

// Create inserts a vehicle for a user.  The plate number is stored
// upper-cased.  The generated ID is written back onto v.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO vehicles (user_id, plate_number, vehicle_type, length_m, width_m) VALUES (?,?,?,?,?)",
		v.UserID, v.PlateNumber, strings.TrimSpace(v.VehicleType), v.LengthM, v.WidthM)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// ListByUser returns all vehicles registered by the user, oldest
// first.
func (r *VehicleRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,plate_number,vehicle_type,length_m,width_m,created_at FROM vehicles WHERE user_id=? ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Vehicle, 0)
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.PlateNumber, &v.VehicleType, &v.LengthM, &v.WidthM, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetForUser returns the vehicle only when it belongs to the user;
// otherwise sql.ErrNoRows.
func (r *VehicleRepo) GetForUser(ctx context.Context, vehicleID, userID uint64) (model.Vehicle, error) {
	var v model.Vehicle
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,plate_number,vehicle_type,length_m,width_m,created_at FROM vehicles WHERE id=? AND user_id=? LIMIT 1",
		vehicleID, userID).Scan(&v.ID, &v.UserID, &v.PlateNumber, &v.VehicleType, &v.LengthM, &v.WidthM, &v.CreatedAt)
	return v, err
}

// Delete removes a vehicle owned by the user.  It fails with
// ErrConflict while the vehicle still has an active reservation and
// with sql.ErrNoRows when the vehicle does not exist for this user.
func (r *VehicleRepo) Delete(ctx context.Context, vehicleID, userID uint64) error {
	if _, err := r.GetForUser(ctx, vehicleID, userID); err != nil {
		return err
	}
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE vehicle_id=? AND status='active'",
		vehicleID).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM vehicles WHERE id=? AND user_id=?", vehicleID, userID)
	return err
}
