package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListMyTickets handles GET /v1/my-tickets.  It returns all tickets
// held by the current user along with event and tier details.  When no
// tickets exist, it returns an empty array.
func (h *AttendeeHandler) ListMyTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.TicketRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// ListMyRegistrations handles GET /v1/my-registrations.  It returns
// every event the current user has joined, newest first.
func (h *AttendeeHandler) ListMyRegistrations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.RegistrationRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load registrations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
