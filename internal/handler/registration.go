package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	queuepub "github.com/iliyamo/event-ticketing/internal/service"
	"github.com/iliyamo/event-ticketing/internal/ticketing"
)

// AttendeeHandler groups the dependencies attendees need to join and
// leave events, view their tickets and manage favorites.  Joining an
// event issues a ticket through the ticketing core; leaving removes the
// registration and performs a best-effort ticket cleanup.
type AttendeeHandler struct {
	EventRepo        *repository.EventRepo
	RegistrationRepo *repository.RegistrationRepo
	TicketRepo       *repository.TicketRepo
	TicketTypeRepo   *repository.TicketTypeRepo
	FavoriteRepo     *repository.FavoriteRepo
	Issuer           *ticketing.Issuer
	Withdrawer       *ticketing.Withdrawer
}

// NewAttendeeHandler constructs a new AttendeeHandler with the provided
// dependencies.  All of them must be non-nil.
func NewAttendeeHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, tickets *repository.TicketRepo, types *repository.TicketTypeRepo, favs *repository.FavoriteRepo, issuer *ticketing.Issuer, withdrawer *ticketing.Withdrawer) *AttendeeHandler {
	if events == nil || regs == nil || tickets == nil || types == nil || favs == nil || issuer == nil || withdrawer == nil {
		panic("nil dependency passed to NewAttendeeHandler")
	}
	return &AttendeeHandler{
		EventRepo:        events,
		RegistrationRepo: regs,
		TicketRepo:       tickets,
		TicketTypeRepo:   types,
		FavoriteRepo:     favs,
		Issuer:           issuer,
		Withdrawer:       withdrawer,
	}
}

type joinReq struct {
	TicketTypeID *uint64 `json:"ticket_type_id"` // optional preferred tier
}

type joinedTicket struct {
	ID           uint64    `json:"id"`
	EventID      uint64    `json:"event_id"`
	TicketTypeID uint64    `json:"ticket_type_id"`
	Status       string    `json:"status"`
	PriceCents   uint32    `json:"price_cents"`
	PurchasedAt  time.Time `json:"purchased_at"`
}

// JoinEvent handles POST /v1/events/:id/join.  It registers the caller
// for the event and issues a ticket in the same request.  The optional
// ticket_type_id in the body names a preferred tier; an id that does
// not belong to the event falls back to the default tier instead of
// failing.  Returns 409 when the user already joined.
func (h *AttendeeHandler) JoinEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req joinReq
	_ = c.Bind(&req) // empty body is fine

	ctx := c.Request().Context()
	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ev.Status != "PUBLISHED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is not open for registration"})
	}

	reg := &model.Registration{EventID: eventID, UserID: userID, Status: "ACTIVE"}
	if err := h.RegistrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create registration failed"})
	}

	ticket, err := h.Issuer.Issue(ctx, eventID, userID, req.TicketTypeID)
	if err != nil {
		// Undo the registration so the user can retry cleanly.
		_ = h.RegistrationRepo.DeleteByEventAndUser(ctx, eventID, userID)
		if errors.Is(err, ticketing.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
	}

	h.publishIssued(ev, ticket)

	return c.JSON(http.StatusCreated, echo.Map{
		"registration_id": reg.ID,
		"joined_at":       reg.CreatedAt,
		"ticket": joinedTicket{
			ID:           ticket.ID,
			EventID:      ticket.EventID,
			TicketTypeID: ticket.TicketTypeID,
			Status:       ticket.Status,
			PriceCents:   ticket.PriceCents,
			PurchasedAt:  ticket.PurchasedAt,
		},
	})
}

// publishIssued notifies the broker about a new ticket.  Publishing is
// fire-and-forget: broker downtime never affects the join request.
func (h *AttendeeHandler) publishIssued(ev *model.Event, ticket model.Ticket) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		typeName := ""
		if tt, err := h.TicketTypeRepo.GetByIDForEvent(ctx, ticket.TicketTypeID, ticket.EventID); err == nil {
			typeName = tt.Name
		}
		_ = queuepub.PublishTicketIssued(ctx, queue.TicketIssuedEvent{
			TicketID:       ticket.ID,
			EventID:        ev.ID,
			EventTitle:     ev.Title,
			UserID:         ticket.UserID,
			TicketTypeID:   ticket.TicketTypeID,
			TicketTypeName: typeName,
			PriceCents:     ticket.PriceCents,
			PurchasedAt:    ticket.PurchasedAt.UTC().Format(time.RFC3339),
		})
	}()
}

// LeaveEvent handles DELETE /v1/events/:id/join.  The registration is
// removed first; ticket cleanup is best-effort and its outcome is
// reported in the response rather than failing the call.
func (h *AttendeeHandler) LeaveEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx := c.Request().Context()
	if err := h.RegistrationRepo.DeleteByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not registered for this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "leave event failed"})
	}

	ticketsRemoved := h.Withdrawer.Withdraw(ctx, eventID, userID)

	return c.JSON(http.StatusOK, echo.Map{
		"left":            true,
		"tickets_removed": ticketsRemoved,
	})
}
