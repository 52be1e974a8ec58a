package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/booking"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
// All business decisions live in the booking service; this layer only
// binds requests and translates the service's sentinel errors into
// status codes.
type ReservationHandler struct {
	Svc *booking.Service
}

func NewReservationHandler(svc *booking.Service) *ReservationHandler {
	if svc == nil {
		panic("nil booking service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

type createReservationReq struct {
	VehicleID uint64  `json:"vehicle_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	AreaID    *uint64 `json:"area_id"` // optional: restrict allocation to one area
}

// Create books the best-fitting available slot for the user's vehicle
// over the requested window.  When nothing fits and growth is enabled
// a new slot is synthesized; the response says so via slot_created.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VehicleID == 0 || req.StartTime == "" || req.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id/start_time/end_time required"})
	}

	res, err := h.Svc.Create(c.Request().Context(), uid, req.VehicleID, req.StartTime, req.EndTime, req.AreaID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrBadTimestamp), errors.Is(err, booking.ErrEndBeforeStart):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrVehicleNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrNoSlotAvailable), errors.Is(err, booking.ErrSlotContended):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "Reservation Successful",
		"reservation_id": res.Reservation.ID,
		"slot":           res.SlotCode,
		"slot_created":   res.SlotCreated,
		"start_time":     utils.FormatTimestamp(res.Reservation.StartTime),
		"end_time":       utils.FormatTimestamp(res.Reservation.EndTime),
	})
}

// List returns the caller's reservations, newest first.  The
// ?active=true query filter hides completed and cancelled rows.
func (h *ReservationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	activeOnly := c.QueryParam("active") == "true"

	items, err := h.Svc.ListForUser(c.Request().Context(), uid, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// Cancel moves an active reservation to cancelled and frees its slot.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	// Admins may cancel any reservation; customers only their own.
	if role, _ := c.Get("role").(string); role == "ADMIN" {
		uid = 0
	}

	if err := h.Svc.Cancel(c.Request().Context(), id, uid); err != nil {
		switch {
		case errors.Is(err, booking.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrNotActive):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation Cancelled"})
}

// Delete removes the reservation record in any status, freeing the
// slot when the reservation was still active.
func (h *ReservationHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if role, _ := c.Get("role").(string); role == "ADMIN" {
		uid = 0
	}

	if err := h.Svc.Delete(c.Request().Context(), id, uid); err != nil {
		if errors.Is(err, booking.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation deleted"})
}
