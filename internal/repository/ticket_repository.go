package repository

import (
	"context"
	"database/sql"
	"time"
)

// TicketRepo provides read access to issued tickets for display to
// attendees and organizers.  Ticket creation and deletion are owned by
// the ticketing package via TicketingStore; this repository only
// assembles listing views.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// TicketDetail pairs a ticket with its event and tier information.  It
// is returned by ListByUser for display to attendees.
type TicketDetail struct {
	ID             uint64    `json:"id"`
	EventID        uint64    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	EventStartsAt  time.Time `json:"event_starts_at"`
	Venue          *string   `json:"venue,omitempty"`
	TicketTypeID   uint64    `json:"ticket_type_id"`
	TicketTypeName string    `json:"ticket_type_name"`
	Status         string    `json:"status"`
	PriceCents     uint32    `json:"price_cents"`
	PurchasedAt    time.Time `json:"purchased_at"`
}

// OwnerTicketDetail extends TicketDetail with the holder's user ID for
// organizer-facing listings.
type OwnerTicketDetail struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	TicketTypeID   uint64    `json:"ticket_type_id"`
	TicketTypeName string    `json:"ticket_type_name"`
	Status         string    `json:"status"`
	PriceCents     uint32    `json:"price_cents"`
	PurchasedAt    time.Time `json:"purchased_at"`
}

// ListByUser returns all tickets held by the given user along with
// event and tier details, newest first.  When no tickets exist, an
// empty slice is returned.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]TicketDetail, error) {
	const q = `SELECT t.id, t.event_id, e.title, e.starts_at, e.venue,
					  t.ticket_type_id, tt.name, t.status, t.price_cents, t.purchased_at
			   FROM tickets t
			   JOIN events e ON e.id = t.event_id
			   JOIN ticket_types tt ON tt.id = t.ticket_type_id
			   WHERE t.user_id = ?
			   ORDER BY t.purchased_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TicketDetail, 0)
	for rows.Next() {
		var d TicketDetail
		var venue sql.NullString
		if err := rows.Scan(&d.ID, &d.EventID, &d.EventTitle, &d.EventStartsAt, &venue,
			&d.TicketTypeID, &d.TicketTypeName, &d.Status, &d.PriceCents, &d.PurchasedAt); err != nil {
			return nil, err
		}
		if venue.Valid {
			v := venue.String
			d.Venue = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEventForOwner returns all tickets issued for a given event when
// accessed by its organizer.  It verifies that the event belongs to the
// owner before returning the list; otherwise ErrForbidden is returned.
// ErrEventNotFound is returned when the event does not exist.
func (r *TicketRepo) ListByEventForOwner(ctx context.Context, eventID, ownerID uint64) ([]OwnerTicketDetail, error) {
	var actualOwnerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM events WHERE id = ?`, eventID).Scan(&actualOwnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if actualOwnerID != ownerID {
		return nil, ErrForbidden
	}

	const q = `SELECT t.id, t.user_id, t.ticket_type_id, tt.name, t.status, t.price_cents, t.purchased_at
			   FROM tickets t
			   JOIN ticket_types tt ON tt.id = t.ticket_type_id
			   WHERE t.event_id = ?
			   ORDER BY t.purchased_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OwnerTicketDetail, 0)
	for rows.Next() {
		var d OwnerTicketDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.TicketTypeID, &d.TicketTypeName,
			&d.Status, &d.PriceCents, &d.PurchasedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
