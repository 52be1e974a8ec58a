// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is the health check and the guidance endpoint, which
// drivers hit from signage QR codes before they ever log in.
func RegisterRoutes(e *echo.Echo, g *handler.GuidanceHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/guidance/:code", g.Route)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login and the refresh flows live under /v1/auth and need no
// session; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout validates its own credentials (bearer or refresh token)
	// so it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterParking registers the parking domain endpoints.  Everything
// here requires a session; writes to areas and slots additionally
// require the ADMIN role.
func RegisterParking(e *echo.Echo, v *handler.VehicleHandler, a *handler.AreaHandler, s *handler.SlotHandler, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	admin := middleware.RequireRole("ADMIN")

	g.POST("/vehicles", v.Create)
	g.GET("/vehicles", v.List)
	g.DELETE("/vehicles/:id", v.Delete)

	g.GET("/areas", a.List)
	g.POST("/areas", a.Create, admin)

	g.GET("/slots", s.List)
	g.POST("/slots", s.Create, admin)
	// Occupancy input from sensors or attendants.
	g.PATCH("/slots/:id/status", s.UpdateStatus, admin)

	g.POST("/reservations", r.Create)
	g.GET("/reservations", r.List)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.DELETE("/reservations/:id", r.Delete)
}
