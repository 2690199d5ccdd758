package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TicketTypeRepo provides CRUD operations for ticket types outside the
// issuance transaction (organizer-facing catalog management).  The
// issuance path accesses ticket types through TicketingStore instead so
// that resolution and creation share one transaction.
type TicketTypeRepo struct {
	db *sql.DB
}

// NewTicketTypeRepo returns a new TicketTypeRepo bound to the given database.
func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo { return &TicketTypeRepo{db: db} }

const ticketTypeColumns = "id, event_id, created_by, name, price_cents, quantity, description, status, created_at, updated_at"

func scanTicketType(row interface{ Scan(...any) error }, tt *model.TicketType) error {
	var desc sql.NullString
	if err := row.Scan(&tt.ID, &tt.EventID, &tt.CreatedBy, &tt.Name, &tt.PriceCents,
		&tt.Quantity, &desc, &tt.Status, &tt.CreatedAt, &tt.UpdatedAt); err != nil {
		return err
	}
	if desc.Valid {
		d := desc.String
		tt.Description = &d
	}
	return nil
}

// Create inserts a new ticket type and populates the generated ID and
// timestamp fields on the provided record.
func (r *TicketTypeRepo) Create(ctx context.Context, tt *model.TicketType) error {
	const qInsert = `INSERT INTO ticket_types (event_id, created_by, name, price_cents, quantity, description, status)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		tt.EventID, tt.CreatedBy, tt.Name, tt.PriceCents, tt.Quantity, tt.Description, tt.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tt.ID = uint64(id)

	const qSelect = "SELECT " + ticketTypeColumns + " FROM ticket_types WHERE id = ?"
	return scanTicketType(r.db.QueryRowContext(ctx, qSelect, tt.ID), tt)
}

// ListByEvent returns the event's ticket types in creation order
// (first-created first).  Auto-increment ids make this ordering stable.
func (r *TicketTypeRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.TicketType, error) {
	const q = "SELECT " + ticketTypeColumns + " FROM ticket_types WHERE event_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TicketType, 0)
	for rows.Next() {
		var tt model.TicketType
		if err := scanTicketType(rows, &tt); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDForEvent fetches a ticket type by id scoped to an event.  An id
// that belongs to a different event is treated as not found.
func (r *TicketTypeRepo) GetByIDForEvent(ctx context.Context, id, eventID uint64) (*model.TicketType, error) {
	const q = "SELECT " + ticketTypeColumns + " FROM ticket_types WHERE id = ? AND event_id = ?"
	var tt model.TicketType
	if err := scanTicketType(r.db.QueryRowContext(ctx, q, id, eventID), &tt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &tt, nil
}

// Update modifies a ticket type's editable fields.  It returns
// sql.ErrNoRows when no row matches (id, event).
func (r *TicketTypeRepo) Update(ctx context.Context, tt *model.TicketType) error {
	const q = `UPDATE ticket_types
			   SET name = ?, price_cents = ?, quantity = ?, description = ?, status = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ? AND event_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		tt.Name, tt.PriceCents, tt.Quantity, tt.Description, tt.Status, tt.ID, tt.EventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDForEvent removes a ticket type when no issued ticket
// references it.  Returns ErrConflict when tickets exist, and
// sql.ErrNoRows when the ticket type does not exist for the event.
func (r *TicketTypeRepo) DeleteByIDForEvent(ctx context.Context, id, eventID uint64) error {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE ticket_type_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ticket_types WHERE id = ? AND event_id = ?`, id, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
