package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// FavoriteRepo manages the favorites relation between users and events.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add marks an event as a favorite for the user.  Favoriting an event
// twice is a no-op; the unique (user, event) constraint absorbs the
// duplicate.
func (r *FavoriteRepo) Add(ctx context.Context, userID, eventID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, event_id) VALUES (?, ?)`, userID, eventID)
	if err != nil && strings.Contains(err.Error(), "1062") {
		return nil
	}
	return err
}

// Remove deletes the favorite row.  Removing a non-favorite is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, eventID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND event_id = ?`, userID, eventID)
	return err
}

// FavoriteDetail pairs a favorite with event information for display.
type FavoriteDetail struct {
	EventID       uint64    `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventStartsAt time.Time `json:"event_starts_at"`
	EventStatus   string    `json:"event_status"`
	FavoritedAt   time.Time `json:"favorited_at"`
}

// ListByUser returns the user's favorited events, newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]FavoriteDetail, error) {
	const q = `SELECT f.event_id, e.title, e.starts_at, e.status, f.created_at
			   FROM favorites f
			   JOIN events e ON e.id = f.event_id
			   WHERE f.user_id = ?
			   ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FavoriteDetail, 0)
	for rows.Next() {
		var d FavoriteDetail
		if err := rows.Scan(&d.EventID, &d.EventTitle, &d.EventStartsAt, &d.EventStatus, &d.FavoritedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
