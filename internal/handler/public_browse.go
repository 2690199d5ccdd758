// This file defines handlers for the public browsing API.  These routes
// allow unauthenticated users to discover published events without
// requiring authentication.  Sensitive fields (owner IDs, draft events,
// timestamps of internal bookkeeping) are filtered from responses.

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.  It produces sanitized responses suitable for guests.
type PublicHandler struct {
	EventRepo      *repository.EventRepo
	TicketTypeRepo *repository.TicketTypeRepo
}

// PublicEvent represents an event exposed via the public API.  It
// contains only safe fields.
type PublicEvent struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"title"`
	Venue    *string   `json:"venue,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// PublicTicketType represents a purchasable tier in public responses.
// Only ACTIVE tiers are listed.
type PublicTicketType struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	PriceCents uint32  `json:"price_cents"`
	Quantity   uint32  `json:"quantity"`
	Desc       *string `json:"description,omitempty"`
}

// PublicEventDetail extends PublicEvent with the description and the
// event's active ticket tiers.
type PublicEventDetail struct {
	PublicEvent
	Description *string            `json:"description,omitempty"`
	TicketTypes []PublicTicketType `json:"ticket_types"`
}

func toPublicEvent(e *model.Event) PublicEvent {
	return PublicEvent{
		ID:       e.ID,
		Title:    e.Title,
		Venue:    e.Venue,
		StartsAt: e.StartsAt,
		EndsAt:   e.EndsAt,
	}
}

// ListPublicEvents handles GET /v1/public/events.  Only PUBLISHED
// events appear, ordered by start time.  The optional ?q= parameter
// filters on title and venue.
func (h *PublicHandler) ListPublicEvents(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.EventRepo.ListPublished(ctx, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicEvent, 0, len(events))
	for _, e := range events {
		out = append(out, toPublicEvent(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPublicEvent handles GET /v1/public/events/:id.  It returns the
// event together with its ACTIVE ticket tiers in creation order.
// Non-published events are hidden from guests and answer 404.
func (h *PublicHandler) GetPublicEvent(c echo.Context) error {
	ctx := c.Request().Context()
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if e.Status != "PUBLISHED" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}

	types, err := h.TicketTypeRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tiers := make([]PublicTicketType, 0, len(types))
	for i := range types {
		tt := &types[i]
		if tt.Status != model.TicketTypeStatusActive {
			continue
		}
		tiers = append(tiers, PublicTicketType{
			ID:         tt.ID,
			Name:       tt.Name,
			PriceCents: tt.PriceCents,
			Quantity:   tt.Quantity,
			Desc:       tt.Description,
		})
	}

	resp := PublicEventDetail{
		PublicEvent: toPublicEvent(e),
		Description: e.Description,
		TicketTypes: tiers,
	}
	return c.JSON(http.StatusOK, resp)
}
