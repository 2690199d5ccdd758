// Package ticketing implements ticket issuance and withdrawal for events.
// Issuance resolves the ticket type to charge against (requested tier,
// else the event's first-created tier, else a freshly provisioned default
// catalog) and creates the ticket inside a single transaction.  Withdrawal
// removes all of a user's tickets for an event on a best-effort basis.
package ticketing

import (
	"context"
	"errors"
	"log"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrEventNotFound is returned by Issue when the target event does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// Store is the storage surface required by the issuance and withdrawal
// procedures.  WithTx runs fn inside one transaction; the other methods
// observe that transaction when called from within fn.  The production
// implementation lives in the repository package.
type Store interface {
	// WithTx executes fn atomically.  A commit failure or an error from fn
	// rolls back and is returned as-is.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// GetEventForUpdate loads an event and locks its row for the duration
	// of the surrounding transaction.  The lock linearizes the
	// check-then-provision sequence for concurrent issuers on the same
	// event.  Returns ErrEventNotFound when the event does not exist.
	GetEventForUpdate(ctx context.Context, eventID uint64) (model.Event, error)

	// ListTicketTypes returns the event's ticket types in creation order
	// (first-created first).
	ListTicketTypes(ctx context.Context, eventID uint64) ([]model.TicketType, error)

	// GetTicketType looks up a ticket type by id scoped to the given
	// event.  An id belonging to a different event is not-found.  Returns
	// (nil, nil) when absent.
	GetTicketType(ctx context.Context, eventID, typeID uint64) (*model.TicketType, error)

	// CreateTicketType inserts a ticket type and populates its generated
	// ID and timestamps.
	CreateTicketType(ctx context.Context, tt *model.TicketType) error

	// CreateTicket inserts a ticket and populates its generated ID.
	CreateTicket(ctx context.Context, t *model.Ticket) error

	// DeleteTickets removes every ticket matching (event, user) and
	// reports how many rows were removed.
	DeleteTickets(ctx context.Context, eventID, userID uint64) (int64, error)
}

// Logger is the diagnostic sink used for non-fatal conditions (fallback
// resolution, swallowed withdrawal failures).  It must never block or
// fail the caller.
type Logger interface {
	Printf(format string, v ...any)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, v ...any) { log.Printf(format, v...) }
