package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/smart-parking/internal/model"
)

// AreaRepo provides access to parking areas.
type AreaRepo struct{ DB *sql.DB }

func NewAreaRepo(db *sql.DB) *AreaRepo { return &AreaRepo{DB: db} }

// Create inserts a named area and writes back the generated ID.  A
// duplicate name yields ErrAreaExists.
func (r *AreaRepo) Create(ctx context.Context, a *model.Area) error {
	a.Name = strings.TrimSpace(a.Name)
	res, err := r.DB.ExecContext(ctx, "INSERT INTO parking_areas (name) VALUES (?)", a.Name)
	if err != nil {
		if isDuplicate(err) {
			return ErrAreaExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List returns all areas ordered by id.
func (r *AreaRepo) List(ctx context.Context) ([]model.Area, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name FROM parking_areas ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Area, 0)
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Exists reports whether an area with the given id is present.
func (r *AreaRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM parking_areas WHERE id=?", id).Scan(&n)
	return n > 0, err
}
