package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// AdminHandler exposes platform-wide moderation endpoints.  All routes
// using it must be protected by the ADMIN role.
type AdminHandler struct {
	UserRepo  *repository.UserRepo
	EventRepo *repository.EventRepo
}

// NewAdminHandler constructs a new AdminHandler and panics if any
// dependency is nil.
func NewAdminHandler(users *repository.UserRepo, events *repository.EventRepo) *AdminHandler {
	if users == nil || events == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{UserRepo: users, EventRepo: events}
}

type adminUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers handles GET /v1/admin/users.  Password hashes never leave
// the repository layer.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.UserRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type setActiveReq struct {
	Active bool `json:"active"`
}

// SetUserActive handles PATCH /v1/admin/users/:id/active.  Deactivated
// users can no longer log in; existing access tokens expire naturally.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.UserRepo.SetActive(c.Request().Context(), userID, req.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": userID, "is_active": req.Active})
}

// ListAllEvents handles GET /v1/admin/events and returns every event
// regardless of owner or status.
func (h *AdminHandler) ListAllEvents(c echo.Context) error {
	events, err := h.EventRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// DeleteAnyEvent handles DELETE /v1/admin/events/:id.  Unlike the
// organizer endpoint it skips the ownership check.
func (h *AdminHandler) DeleteAnyEvent(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.EventRepo.DeleteByID(c.Request().Context(), eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
