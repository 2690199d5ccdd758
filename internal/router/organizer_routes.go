package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterOrganizer registers ORGANIZER-scoped endpoints under /v1.
// All routes require a valid JWT and the ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORGANIZER"),
	)

	// ---- Events ----
	g.POST("/events", o.CreateEvent)
	g.GET("/events", o.ListMyEvents)
	g.GET("/events/:id", o.GetMyEvent)
	g.PUT("/events/:id", o.UpdateEvent)
	g.PATCH("/events/:id", o.UpdateEvent) // alias for clients that use PATCH
	g.DELETE("/events/:id", o.DeleteEvent)

	// ---- Ticket types ----
	g.POST("/events/:id/ticket-types", o.CreateTicketType)
	g.GET("/events/:id/ticket-types", o.ListTicketTypes)
	g.PUT("/events/:id/ticket-types/:typeID", o.UpdateTicketType)
	g.PATCH("/events/:id/ticket-types/:typeID", o.UpdateTicketType)
	g.DELETE("/events/:id/ticket-types/:typeID", o.DeleteTicketType)

	// ---- Attendee listings ----
	g.GET("/events/:id/registrations", o.ListEventRegistrations)
	g.GET("/events/:id/tickets", o.ListEventTickets)
}
