package model

import "time"

// Registration links an attendee to an event they joined.  Unlike
// tickets, registrations are unique per (event, user) pair: joining
// an event twice is a conflict.  Removing a registration triggers a
// best-effort cleanup of the user's tickets for that event.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – joined event.
//  UserID    – attendee.
//  Status    – registration state (ACTIVE, CANCELLED).
//  CreatedAt – when the user joined.
type Registration struct {
	ID        uint64    // registrations.id
	EventID   uint64    // registrations.event_id
	UserID    uint64    // registrations.user_id
	Status    string    // registrations.status
	CreatedAt time.Time // registrations.created_at
}

// Favorite marks an event a user has favorited.  The (user, event)
// pair is unique; favoriting twice is a no-op at the API level.
type Favorite struct {
	ID        uint64    // favorites.id
	UserID    uint64    // favorites.user_id
	EventID   uint64    // favorites.event_id
	CreatedAt time.Time // favorites.created_at
}
