// Package repository implements MySQL persistence for users,
// vehicles, areas, slots and reservations.  The sentinel errors
// below are shared across repositories so handlers can map failure
// scenarios onto HTTP statuses without string matching.  Row-not-
// found conditions are reported as sql.ErrNoRows unless a more
// specific sentinel exists.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on
// a resource they do not own.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because
// of dependent state, such as deleting a vehicle that still has an
// active reservation.  Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotCodeExists is returned when an administrator adds a slot
// whose code is already taken.
var ErrSlotCodeExists = errors.New("slot_code already exists")

// ErrAreaExists is returned when an area with the same name already
// exists.
var ErrAreaExists = errors.New("area already exists")

// ErrAreaNotFound is returned when a referenced parking area does
// not exist.
var ErrAreaNotFound = errors.New("area not found")

// isDuplicate reports whether err is a MySQL duplicate-key error
// (error number 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
