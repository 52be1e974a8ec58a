package model

import "time"

// Vehicle represents a registered vehicle belonging to a user.  The
// footprint (length and width in meters) is what the allocator
// matches against slot dimensions; both values must be positive when
// the vehicle is registered.
//
// Fields:
//  ID          - primary key identifier.
//  UserID      - owning user.
//  PlateNumber - license plate, stored upper-cased.
//  VehicleType - free-form type label (e.g. "sedan", "suv").
//  LengthM     - vehicle length in meters.
//  WidthM      - vehicle width in meters.
type Vehicle struct {
	ID          uint64    `json:"id"`           // vehicles.id
	UserID      uint64    `json:"user_id"`      // vehicles.user_id
	PlateNumber string    `json:"plate_number"` // vehicles.plate_number
	VehicleType string    `json:"vehicle_type"` // vehicles.vehicle_type
	LengthM     float64   `json:"length_m"`     // vehicles.length_m
	WidthM      float64   `json:"width_m"`      // vehicles.width_m
	CreatedAt   time.Time `json:"-"`            // vehicles.created_at
}
