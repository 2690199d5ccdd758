package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// OrganizerHandler bundles repositories for organizers to manage their
// events, ticket-type catalogs and attendee listings.
type OrganizerHandler struct {
	EventRepo        *repository.EventRepo
	TicketTypeRepo   *repository.TicketTypeRepo
	TicketRepo       *repository.TicketRepo
	RegistrationRepo *repository.RegistrationRepo
}

// NewOrganizerHandler constructs a new OrganizerHandler and panics if any
// dependency is nil.
func NewOrganizerHandler(events *repository.EventRepo, types *repository.TicketTypeRepo, tickets *repository.TicketRepo, regs *repository.RegistrationRepo) *OrganizerHandler {
	if events == nil || types == nil || tickets == nil || regs == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{
		EventRepo:        events,
		TicketTypeRepo:   types,
		TicketRepo:       tickets,
		RegistrationRepo: regs,
	}
}

// ----- DTOs -----

type eventReq struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
	StartsAt    string  `json:"starts_at"` // RFC3339
	EndsAt      string  `json:"ends_at"`   // RFC3339
	Status      string  `json:"status"`    // DRAFT | PUBLISHED | CANCELLED
}

type eventResp struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Description: e.Description,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// parseEventReq validates the body and returns a populated model.  An
// empty status defaults to DRAFT.
func parseEventReq(req eventReq) (*model.Event, string) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, "title is required"
	}
	starts, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, "starts_at must be RFC3339"
	}
	ends, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, "ends_at must be RFC3339"
	}
	if !ends.After(starts) {
		return nil, "ends_at must be after starts_at"
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case "":
		status = "DRAFT"
	case "DRAFT", "PUBLISHED", "CANCELLED":
	default:
		return nil, "status must be DRAFT, PUBLISHED or CANCELLED"
	}
	return &model.Event{
		Title:       title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    starts.UTC(),
		EndsAt:      ends.UTC(),
		Status:      status,
	}, ""
}

// CreateEvent handles POST /v1/events.  The authenticated organizer
// becomes the owner of the new event.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ev, msg := parseEventReq(req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ev.OwnerID = userID

	if err := h.EventRepo.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, toEventResp(ev))
}

// ListMyEvents handles GET /v1/events and returns every event owned by
// the caller, oldest first.
func (h *OrganizerHandler) ListMyEvents(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.EventRepo.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventResp, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResp(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMyEvent handles GET /v1/events/:id for the owning organizer.
func (h *OrganizerHandler) GetMyEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.EventRepo.GetByIDAndOwner(c.Request().Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toEventResp(ev))
}

// UpdateEvent handles PUT /v1/events/:id.  The full event body is
// required; partial updates are not supported.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ev, msg := parseEventReq(req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ev.ID = eventID

	ctx := c.Request().Context()
	if err := h.EventRepo.Update(ctx, ev, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	updated, err := h.EventRepo.GetByIDAndOwner(ctx, eventID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toEventResp(updated))
}

// DeleteEvent handles DELETE /v1/events/:id.  Deleting an event removes
// its ticket types, tickets, registrations and favorites as well.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.EventRepo.DeleteByIDAndOwner(c.Request().Context(), eventID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
