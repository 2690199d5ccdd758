package model

import "time"

// TicketType status values.  SOLD_OUT is informational; the
// issuance path does not enforce the quantity cap.
const (
	TicketTypeStatusActive  = "ACTIVE"
	TicketTypeStatusDraft   = "DRAFT"
	TicketTypeStatusSoldOut = "SOLD_OUT"
)

// TicketType describes a purchasable tier for an event (name, price,
// capacity).  Ticket types are created either explicitly by an
// organizer or implicitly when a ticket is issued against an event
// that has none yet.  Each ticket type belongs to exactly one event.
//
// Fields:
//  ID          – primary key identifier.
//  EventID     – event to which this tier belongs.
//  CreatedBy   – user who created the tier.  For auto-provisioned
//                tiers this is the event owner, not the buyer.
//  Name        – tier name (e.g. "General Admission").
//  PriceCents  – price in cents; zero means free.
//  Quantity    – hard cap on tickets; 0 means unlimited.
//  Description – optional tier description.
//  Status      – tier state (ACTIVE, DRAFT, SOLD_OUT).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type TicketType struct {
	ID          uint64    // ticket_types.id
	EventID     uint64    // ticket_types.event_id
	CreatedBy   uint64    // ticket_types.created_by
	Name        string    // ticket_types.name
	PriceCents  uint32    // ticket_types.price_cents
	Quantity    uint32    // ticket_types.quantity (0 = unlimited)
	Description *string   // ticket_types.description (nullable)
	Status      string    // ticket_types.status
	CreatedAt   time.Time // ticket_types.created_at
	UpdatedAt   time.Time // ticket_types.updated_at
}
