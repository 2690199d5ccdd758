package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// RegistrationRepo provides CRUD operations for event registrations.
// A registration records that a user joined an event; the unique
// (event_id, user_id) index makes double joins a conflict.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Create inserts a new registration.  It populates the generated ID and
// CreatedAt on the provided record.  ErrAlreadyRegistered is returned
// when the unique (event, user) constraint is violated.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	const qInsert = `INSERT INTO registrations (event_id, user_id, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, reg.EventID, reg.UserID, reg.Status)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrAlreadyRegistered
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)

	const qSelect = `SELECT created_at FROM registrations WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, reg.ID).Scan(&reg.CreatedAt)
}

// GetByEventAndUser fetches a registration for the given pair.  It
// returns sql.ErrNoRows when none exists.
func (r *RegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID uint64) (*model.Registration, error) {
	const q = `SELECT id, event_id, user_id, status, created_at
			   FROM registrations WHERE event_id = ? AND user_id = ?`
	var reg model.Registration
	if err := r.db.QueryRowContext(ctx, q, eventID, userID).Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt); err != nil {
		return nil, err
	}
	return &reg, nil
}

// DeleteByEventAndUser removes the registration for the given pair.  It
// returns sql.ErrNoRows when nothing was deleted.
func (r *RegistrationRepo) DeleteByEventAndUser(ctx context.Context, eventID, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RegistrationDetail pairs a registration with event information for
// display to attendees.
type RegistrationDetail struct {
	ID            uint64    `json:"id"`
	EventID       uint64    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventStartsAt time.Time `json:"event_starts_at"`
	EventStatus   string    `json:"event_status"`
	Status        string    `json:"status"`
	JoinedAt      time.Time `json:"joined_at"`
}

// ListByUser returns all registrations for the given user along with
// event details, newest first.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]RegistrationDetail, error) {
	const q = `SELECT reg.id, reg.event_id, e.title, e.starts_at, e.status, reg.status, reg.created_at
			   FROM registrations reg
			   JOIN events e ON e.id = reg.event_id
			   WHERE reg.user_id = ?
			   ORDER BY reg.created_at DESC, reg.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RegistrationDetail, 0)
	for rows.Next() {
		var d RegistrationDetail
		if err := rows.Scan(&d.ID, &d.EventID, &d.EventTitle, &d.EventStartsAt,
			&d.EventStatus, &d.Status, &d.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerRegistrationDetail extends the registration view with the
// attendee's user ID and email for organizer-facing listings.
type OwnerRegistrationDetail struct {
	ID       uint64    `json:"id"`
	UserID   uint64    `json:"user_id"`
	Email    string    `json:"email"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// ListByEventForOwner returns all registrations for a given event when
// accessed by its organizer.  ErrForbidden is returned when the caller
// does not own the event, ErrEventNotFound when the event is missing.
func (r *RegistrationRepo) ListByEventForOwner(ctx context.Context, eventID, ownerID uint64) ([]OwnerRegistrationDetail, error) {
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

	const q = `SELECT reg.id, reg.user_id, u.email, reg.status, reg.created_at
			   FROM registrations reg
			   JOIN users u ON u.id = reg.user_id
			   WHERE reg.event_id = ?
			   ORDER BY reg.created_at DESC, reg.id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OwnerRegistrationDetail, 0)
	for rows.Next() {
		var d OwnerRegistrationDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.Email, &d.Status, &d.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
