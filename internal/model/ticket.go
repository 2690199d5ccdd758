package model

import "time"

// Ticket status values.  Tickets start out REGISTERED.
const (
	TicketStatusRegistered = "REGISTERED"
	TicketStatusCheckedIn  = "CHECKED_IN"
	TicketStatusCancelled  = "CANCELLED"
)

// Ticket records a ticket issued to a user for an event.  The price
// is copied from the resolved ticket type at issuance time, so later
// price changes to the tier do not alter already-issued tickets.
// There is no uniqueness constraint on (event, user): a user may
// hold several tickets for the same event.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – event the ticket admits to.
//  UserID       – holder of the ticket.
//  TicketTypeID – tier the ticket was issued against.  Always
//                 belongs to the same event as the ticket.
//  Status       – ticket state (REGISTERED, CHECKED_IN, CANCELLED).
//  PriceCents   – price snapshot taken at issuance.
//  PurchasedAt  – when the ticket was issued.
//  CreatedAt    – creation timestamp.
type Ticket struct {
	ID           uint64    // tickets.id
	EventID      uint64    // tickets.event_id
	UserID       uint64    // tickets.user_id
	TicketTypeID uint64    // tickets.ticket_type_id
	Status       string    // tickets.status
	PriceCents   uint32    // tickets.price_cents
	PurchasedAt  time.Time // tickets.purchased_at
	CreatedAt    time.Time // tickets.created_at
}
