package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/booking"
	"github.com/iliyamo/smart-parking/internal/routing"
)

// GuidanceHandler serves walking directions from the entrance to a
// slot.  The corridor graph is built once at startup from
// configuration; requests only run the shortest-path search.
type GuidanceHandler struct {
	Graph routing.Graph
	Svc   *booking.Service
}

func NewGuidanceHandler(g routing.Graph, svc *booking.Service) *GuidanceHandler {
	if g == nil || svc == nil {
		panic("nil dependency passed to NewGuidanceHandler")
	}
	return &GuidanceHandler{Graph: g, Svc: svc}
}

// Route returns the shortest path from the entrance to the slot code
// in the URL.  Slot codes are case-insensitive.  The expiry sweep
// runs first so guidance is served against current slot state.
func (h *GuidanceHandler) Route(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot code required"})
	}
	if err := h.Svc.Sweep(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "expire reservations failed"})
	}

	route, ok := h.Graph.ShortestPath(routing.Entrance, code)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no route to slot " + code})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slot":         code,
		"path":         route.Path,
		"distance":     route.Cost,
		"instructions": fmt.Sprintf("Follow the corridor %s to reach slot %s.", strings.Join(route.Path, " -> "), code),
	})
}
