package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/repository"
)

// AreaHandler manages parking areas.  Creation is admin-only;
// listing is open to any authenticated user.
type AreaHandler struct {
	Areas *repository.AreaRepo
}

func NewAreaHandler(a *repository.AreaRepo) *AreaHandler {
	if a == nil {
		panic("nil repository passed to NewAreaHandler")
	}
	return &AreaHandler{Areas: a}
}

type createAreaReq struct {
	Name string `json:"name"`
}

func (h *AreaHandler) Create(c echo.Context) error {
	var req createAreaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	a := model.Area{Name: req.Name}
	if err := h.Areas.Create(c.Request().Context(), &a); err != nil {
		if err == repository.ErrAreaExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "area already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create area failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AreaHandler) List(c echo.Context) error {
	items, err := h.Areas.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list areas failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": items})
}
