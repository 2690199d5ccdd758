package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterAttendee registers attendee-scoped endpoints under /v1.  All
// routes require a valid JWT and the ATTENDEE role.  Attendees can
// join and leave events, view their tickets and registrations, and
// manage favorites.
func RegisterAttendee(e *echo.Echo, h *handler.AttendeeHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ATTENDEE"),
	)
	// Joining registers the user and issues a ticket in one call; the
	// body may carry an optional ticket_type_id.
	g.POST("/events/:id/join", h.JoinEvent)
	g.DELETE("/events/:id/join", h.LeaveEvent)

	g.GET("/my-tickets", h.ListMyTickets)
	g.GET("/my-registrations", h.ListMyRegistrations)

	g.POST("/events/:id/favorite", h.AddFavorite)
	g.DELETE("/events/:id/favorite", h.RemoveFavorite)
	g.GET("/my-favorites", h.ListFavorites)
}
