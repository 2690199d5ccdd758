// This file defines repository methods for events. An Event is the
// central entity of the platform: ticket types, tickets, registrations
// and favorites all hang off it. Public API responses should expose
// only published events to guests.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRepo encapsulates all database queries related to events.  It
// depends on a sql.DB connection which should be configured elsewhere.
type EventRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewEventRepo constructs an EventRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = "id, owner_id, title, description, venue, starts_at, ends_at, status, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	var desc, venue sql.NullString
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &desc, &venue,
		&e.StartsAt, &e.EndsAt, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	if desc.Valid {
		d := desc.String
		e.Description = &d
	}
	if venue.Valid {
		v := venue.String
		e.Venue = &v
	}
	return nil
}

// Create inserts a new event into the database.  On success the event's
// ID field will be populated with the auto-generated value.  After the
// insert, a SELECT is executed to populate the CreatedAt and UpdatedAt
// fields so that callers receive a fully populated record.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const qInsert = `INSERT INTO events (owner_id, title, description, venue, starts_at, ends_at, status)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		e.OwnerID, e.Title, e.Description, e.Venue, e.StartsAt, e.EndsAt, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	const qSelect = "SELECT " + eventColumns + " FROM events WHERE id = ?"
	return scanEvent(r.db.QueryRowContext(ctx, qSelect, e.ID), e)
}

// GetByID fetches an event by its ID regardless of owner.  It returns
// ErrEventNotFound if no row is found.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events WHERE id = ?"
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDAndOwner fetches an event by id but only if it belongs to the
// specified owner.  If the event doesn't exist or is owned by someone
// else, ErrEventNotFound is returned.
func (r *EventRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events WHERE id = ? AND owner_id = ?"
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id, ownerID), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByOwner returns all events for a specific organizer ordered by id.
func (r *EventRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events WHERE owner_id = ? ORDER BY id"
	return r.list(ctx, q, ownerID)
}

// ListPublished returns events visible to guests: status PUBLISHED,
// ordered by start time.  When search is non-empty, title and venue
// are matched with a LIKE filter.
func (r *EventRepo) ListPublished(ctx context.Context, search string) ([]*model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE status = 'PUBLISHED'"
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		q += " AND (title LIKE ? OR venue LIKE ?)"
		pat := "%" + s + "%"
		args = append(args, pat, pat)
	}
	q += " ORDER BY starts_at"
	return r.list(ctx, q, args...)
}

// ListAll returns all events regardless of owner or status.  Intended
// for admin use only.
func (r *EventRepo) ListAll(ctx context.Context) ([]*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events ORDER BY id"
	return r.list(ctx, q)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...any) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e := new(model.Event)
		if err := scanEvent(rows, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies an event's editable fields if it belongs to the
// provided owner.  It returns sql.ErrNoRows when no row is affected
// (not found / not owned).
func (r *EventRepo) Update(ctx context.Context, e *model.Event, ownerID uint64) error {
	const q = `UPDATE events
			   SET title = ?, description = ?, venue = ?, starts_at = ?, ends_at = ?, status = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Description, e.Venue, e.StartsAt, e.EndsAt, e.Status, e.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner removes an event and all dependent records (ticket
// types, tickets, registrations and favorites) provided it belongs to
// the specified owner. If the event does not exist, sql.ErrNoRows is
// returned. If the event exists but is owned by a different user,
// ErrForbidden is returned. The deletion occurs within a transaction to
// maintain integrity.
func (r *EventRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify event exists and ownership
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM events WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	err = deleteEventCascade(ctx, tx, id)
	return err
}

// DeleteByID removes an event and its dependents without an ownership
// check.  Intended for admin use only.  Returns sql.ErrNoRows when the
// event does not exist.
func (r *EventRepo) DeleteByID(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var exists uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	err = deleteEventCascade(ctx, tx, id)
	return err
}

// deleteEventCascade removes dependent rows before the event itself.
// Ordering matters: tickets reference ticket_types.
func deleteEventCascade(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ticket_types WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
