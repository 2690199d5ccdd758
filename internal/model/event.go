package model

import "time"

// Event represents a scheduled event created by an organizer.  An
// event owns zero or more TicketType records and zero or more
// Ticket records.  This struct corresponds to a row in the
// `events` table.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the organizer who created the event.
//  Title       – human-friendly event title.
//  Description – optional long description.
//  Venue       – optional venue name or address.
//  StartsAt    – when the event begins.
//  EndsAt      – when the event ends (must be after StartsAt).
//  Status      – current state of the event (DRAFT, PUBLISHED,
//                CANCELLED).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    // events.id
	OwnerID     uint64    // events.owner_id
	Title       string    // events.title
	Description *string   // events.description (nullable)
	Venue       *string   // events.venue (nullable)
	StartsAt    time.Time // events.starts_at
	EndsAt      time.Time // events.ends_at
	Status      string    // events.status
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}
