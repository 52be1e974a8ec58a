package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/repository"
)

// VehicleHandler manages the caller's registered vehicles.  Vehicle
// dimensions recorded here are what the allocator fits against when
// the vehicle books a slot.
type VehicleHandler struct {
	Vehicles *repository.VehicleRepo
}

func NewVehicleHandler(v *repository.VehicleRepo) *VehicleHandler {
	if v == nil {
		panic("nil repository passed to NewVehicleHandler")
	}
	return &VehicleHandler{Vehicles: v}
}

type createVehicleReq struct {
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	LengthM     float64 `json:"length_m"`
	WidthM      float64 `json:"width_m"`
}

// Create registers a vehicle under the authenticated user.  The
// plate is stored upper-cased; duplicate plates for the same user
// conflict.
func (h *VehicleHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PlateNumber = strings.TrimSpace(req.PlateNumber)
	req.VehicleType = strings.TrimSpace(req.VehicleType)
	if req.PlateNumber == "" || req.VehicleType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plate_number/vehicle_type required"})
	}
	if req.LengthM <= 0 || req.WidthM <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "length_m and width_m must be positive"})
	}

	v := model.Vehicle{
		UserID:      uid,
		PlateNumber: req.PlateNumber,
		VehicleType: req.VehicleType,
		LengthM:     req.LengthM,
		WidthM:      req.WidthM,
	}
	if err := h.Vehicles.Create(c.Request().Context(), &v); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "plate already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vehicle failed"})
	}
	return c.JSON(http.StatusCreated, v)
}

// List returns all vehicles owned by the caller.
func (h *VehicleHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Vehicles.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list vehicles failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": items})
}

// Delete removes a vehicle.  A vehicle with an active reservation
// cannot be removed until the reservation ends or is cancelled.
func (h *VehicleHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	switch err := h.Vehicles.Delete(c.Request().Context(), id, uid); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle deleted"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle has an active reservation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete vehicle failed"})
	}
}
