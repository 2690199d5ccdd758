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

// ----- DTOs -----

type ticketTypeReq struct {
	Name        string  `json:"name"`
	PriceCents  uint32  `json:"price_cents"`
	Quantity    uint32  `json:"quantity"` // 0 = unlimited
	Description *string `json:"description"`
	Status      string  `json:"status"` // ACTIVE | DRAFT | SOLD_OUT
}

type ticketTypeResp struct {
	ID          uint64    `json:"id"`
	EventID     uint64    `json:"event_id"`
	Name        string    `json:"name"`
	PriceCents  uint32    `json:"price_cents"`
	Quantity    uint32    `json:"quantity"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTicketTypeResp(tt *model.TicketType) ticketTypeResp {
	return ticketTypeResp{
		ID:          tt.ID,
		EventID:     tt.EventID,
		Name:        tt.Name,
		PriceCents:  tt.PriceCents,
		Quantity:    tt.Quantity,
		Description: tt.Description,
		Status:      tt.Status,
		CreatedAt:   tt.CreatedAt,
		UpdatedAt:   tt.UpdatedAt,
	}
}

func parseTicketTypeReq(req ticketTypeReq) (*model.TicketType, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "name is required"
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case "":
		status = model.TicketTypeStatusActive
	case model.TicketTypeStatusActive, model.TicketTypeStatusDraft, model.TicketTypeStatusSoldOut:
	default:
		return nil, "status must be ACTIVE, DRAFT or SOLD_OUT"
	}
	return &model.TicketType{
		Name:        name,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
		Description: req.Description,
		Status:      status,
	}, ""
}

// ownEvent loads the event and enforces ownership.  A nil return with a
// non-nil error means a response was already written.
func (h *OrganizerHandler) ownEvent(c echo.Context, eventID, userID uint64) (*model.Event, error) {
	ev, err := h.EventRepo.GetByIDAndOwner(c.Request().Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return ev, nil
}

// CreateTicketType handles POST /v1/events/:id/ticket-types.
func (h *OrganizerHandler) CreateTicketType(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.ownEvent(c, eventID, userID)
	if ev == nil {
		return err
	}
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	tt, msg := parseTicketTypeReq(req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	tt.EventID = ev.ID
	tt.CreatedBy = userID

	if err := h.TicketTypeRepo.Create(c.Request().Context(), tt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket type failed"})
	}
	return c.JSON(http.StatusCreated, toTicketTypeResp(tt))
}

// ListTicketTypes handles GET /v1/events/:id/ticket-types for the
// owning organizer.  Types are returned in creation order.
func (h *OrganizerHandler) ListTicketTypes(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.ownEvent(c, eventID, userID)
	if ev == nil {
		return err
	}
	types, err := h.TicketTypeRepo.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ticketTypeResp, 0, len(types))
	for i := range types {
		out = append(out, toTicketTypeResp(&types[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateTicketType handles PUT /v1/events/:id/ticket-types/:typeID.
// Price changes never touch already-issued tickets; each ticket keeps
// the price snapshot taken at issuance.
func (h *OrganizerHandler) UpdateTicketType(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	typeID, ok := pathID(c, "typeID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}
	ev, err := h.ownEvent(c, eventID, userID)
	if ev == nil {
		return err
	}
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	tt, msg := parseTicketTypeReq(req)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	tt.ID = typeID
	tt.EventID = eventID

	ctx := c.Request().Context()
	if err := h.TicketTypeRepo.Update(ctx, tt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update ticket type failed"})
	}
	updated, err := h.TicketTypeRepo.GetByIDForEvent(ctx, typeID, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toTicketTypeResp(updated))
}

// DeleteTicketType handles DELETE /v1/events/:id/ticket-types/:typeID.
// A type with issued tickets cannot be deleted and yields 409.
func (h *OrganizerHandler) DeleteTicketType(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	typeID, ok := pathID(c, "typeID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}
	ev, err := h.ownEvent(c, eventID, userID)
	if ev == nil {
		return err
	}
	if err := h.TicketTypeRepo.DeleteByIDForEvent(c.Request().Context(), typeID, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket type has issued tickets"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete ticket type failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEventRegistrations handles GET /v1/events/:id/registrations and
// returns everyone who joined the event, newest first.
func (h *OrganizerHandler) ListEventRegistrations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	regs, err := h.RegistrationRepo.ListByEventForOwner(c.Request().Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": regs})
}

// ListEventTickets handles GET /v1/events/:id/tickets and returns every
// ticket issued for the event, newest first.
func (h *OrganizerHandler) ListEventTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	tickets, err := h.TicketRepo.ListByEventForOwner(c.Request().Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tickets})
}
