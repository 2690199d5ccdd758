package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/ticketing"
)

type txKey struct{}

// TicketingStore implements ticketing.Store over MySQL.  WithTx opens a
// transaction and threads it through the context so that every store
// call made inside the callback shares it; nested WithTx calls reuse
// the outer transaction.
type TicketingStore struct {
	db *sql.DB
}

// NewTicketingStore returns a TicketingStore bound to the given database.
func NewTicketingStore(db *sql.DB) *TicketingStore { return &TicketingStore{db: db} }

func (s *TicketingStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *TicketingStore) q(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}

// GetEventForUpdate loads the event and, when called inside WithTx,
// locks its row until the transaction ends.  The lock serializes the
// zero-types check and default provisioning across concurrent issuers
// for the same event.
func (s *TicketingStore) GetEventForUpdate(ctx context.Context, eventID uint64) (model.Event, error) {
	q := `SELECT id, owner_id, title, status FROM events WHERE id = ?`
	if txFromContext(ctx) != nil {
		q += " FOR UPDATE"
	}
	var ev model.Event
	err := s.q(ctx).QueryRowContext(ctx, q, eventID).Scan(&ev.ID, &ev.OwnerID, &ev.Title, &ev.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ticketing.ErrEventNotFound
		}
		return model.Event{}, err
	}
	return ev, nil
}

// ListTicketTypes returns the event's ticket types ordered by id, which
// follows creation order under auto-increment keys.
func (s *TicketingStore) ListTicketTypes(ctx context.Context, eventID uint64) ([]model.TicketType, error) {
	const q = "SELECT " + ticketTypeColumns + " FROM ticket_types WHERE event_id = ? ORDER BY id"
	rows, err := s.q(ctx).QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.TicketType
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

// GetTicketType looks up a ticket type by id scoped to the event.  A
// missing row is (nil, nil): the issuance path treats it as a fallback
// trigger, not an error.
func (s *TicketingStore) GetTicketType(ctx context.Context, eventID, typeID uint64) (*model.TicketType, error) {
	const q = "SELECT " + ticketTypeColumns + " FROM ticket_types WHERE id = ? AND event_id = ?"
	var tt model.TicketType
	if err := scanTicketType(s.q(ctx).QueryRowContext(ctx, q, typeID, eventID), &tt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tt, nil
}

// CreateTicketType inserts a ticket type and populates its generated ID
// and timestamps on the provided record.
func (s *TicketingStore) CreateTicketType(ctx context.Context, tt *model.TicketType) error {
	const qInsert = `INSERT INTO ticket_types (event_id, created_by, name, price_cents, quantity, description, status)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.q(ctx).ExecContext(ctx, qInsert,
		tt.EventID, tt.CreatedBy, tt.Name, tt.PriceCents, tt.Quantity, tt.Description, tt.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	tt.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM ticket_types WHERE id = ?`
	return s.q(ctx).QueryRowContext(ctx, qSelect, tt.ID).Scan(&tt.CreatedAt, &tt.UpdatedAt)
}

// CreateTicket inserts a ticket and populates its generated ID.
func (s *TicketingStore) CreateTicket(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (event_id, user_id, ticket_type_id, status, price_cents, purchased_at)
			   VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.q(ctx).ExecContext(ctx, q,
		t.EventID, t.UserID, t.TicketTypeID, t.Status, t.PriceCents, t.PurchasedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// DeleteTickets removes every ticket matching (event, user) and reports
// the number of rows removed.
func (s *TicketingStore) DeleteTickets(ctx context.Context, eventID, userID uint64) (int64, error) {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM tickets WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
