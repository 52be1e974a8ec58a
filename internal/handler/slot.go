package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/booking"
	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/repository"
)

// SlotHandler exposes slot administration and browsing.  Slot writes
// are admin-only; listing runs the expiry sweep first so the
// availability the client sees already reflects passed reservation
// windows.
type SlotHandler struct {
	Slots *repository.SlotRepo
	Svc   *booking.Service
}

func NewSlotHandler(s *repository.SlotRepo, svc *booking.Service) *SlotHandler {
	if s == nil || svc == nil {
		panic("nil dependency passed to NewSlotHandler")
	}
	return &SlotHandler{Slots: s, Svc: svc}
}

type createSlotReq struct {
	SlotCode string  `json:"slot_code"`
	LengthM  float64 `json:"length_m"`
	WidthM   float64 `json:"width_m"`
	AreaID   uint64  `json:"area_id"`
}

// Create adds an administratively sized slot to an existing area.
func (h *SlotHandler) Create(c echo.Context) error {
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.SlotCode = strings.TrimSpace(req.SlotCode)
	if req.SlotCode == "" || req.AreaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot_code/area_id required"})
	}
	if req.LengthM <= 0 || req.WidthM <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "length_m and width_m must be positive"})
	}

	s := model.Slot{
		Code:    req.SlotCode,
		LengthM: req.LengthM,
		WidthM:  req.WidthM,
		AreaID:  req.AreaID,
		Status:  model.SlotAvailable,
	}
	switch err := h.Slots.Create(c.Request().Context(), &s); err {
	case nil:
		return c.JSON(http.StatusCreated, s)
	case repository.ErrAreaNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "area not found"})
	case repository.ErrSlotCodeExists:
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot_code already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create slot failed"})
	}
}

// List returns slots, optionally filtered by ?area_id.  Expired
// reservations are completed first so freed slots show as available.
func (h *SlotHandler) List(c echo.Context) error {
	if err := h.Svc.Sweep(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "expire reservations failed"})
	}

	var areaID *uint64
	if raw := c.QueryParam("area_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area_id"})
		}
		areaID = &n
	}

	items, err := h.Slots.List(c.Request().Context(), areaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list slots failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": items})
}

type slotStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus flips a slot between available and occupied, for
// sensor or attendant input.  Reserved slots belong to the booking
// lifecycle and cannot be overridden here.
func (h *SlotHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	var req slotStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.SlotStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status != model.SlotAvailable && status != model.SlotOccupied {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be available or occupied"})
	}

	changed, err := h.Slots.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update slot failed"})
	}
	if !changed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot not found or currently reserved"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Slot updated", "status": status})
}
