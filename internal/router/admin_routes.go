package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterAdmin registers platform moderation endpoints under
// /v1/admin.  All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("/users", h.ListUsers)
	g.PATCH("/users/:id/active", h.SetUserActive)
	g.GET("/events", h.ListAllEvents)
	g.DELETE("/events/:id", h.DeleteAnyEvent)
}
