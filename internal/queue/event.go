// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketIssuedEvent is published when a ticket is successfully issued.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type TicketIssuedEvent struct {
	TicketID       uint64 `json:"ticket_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	UserID         uint64 `json:"user_id"`
	TicketTypeID   uint64 `json:"ticket_type_id"`
	TicketTypeName string `json:"ticket_type_name"`
	PriceCents     uint32 `json:"price_cents"`
	PurchasedAt    string `json:"purchased_at"`
}
