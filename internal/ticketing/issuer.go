package ticketing

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// Issuer creates tickets for users against events.  All resolution and
// persistence for one call happens inside a single transaction so every
// step observes a consistent snapshot of the event's ticket-type set.
type Issuer struct {
	store Store
	clock clock.Clock
	log   Logger
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerLogger overrides the diagnostic sink.
func WithIssuerLogger(l Logger) IssuerOption {
	return func(i *Issuer) { i.log = l }
}

// NewIssuer constructs an Issuer.  Store and clock must be non-nil.
func NewIssuer(store Store, clk clock.Clock, opts ...IssuerOption) *Issuer {
	if store == nil || clk == nil {
		panic("nil dependency passed to NewIssuer")
	}
	i := &Issuer{store: store, clock: clk, log: stdLogger{}}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue creates exactly one ticket for userID on eventID.  When
// requestedTypeID is non-nil it names the preferred ticket type; an id
// that does not resolve within the event is logged and ignored rather
// than failing the call.  When the event has no ticket types at all, a
// default three-tier catalog is provisioned inside the same transaction
// and the ticket is issued against General Admission at price zero.
//
// The ticket's price is a snapshot of the resolved type's price at
// issuance time.  The only error conditions are a missing event
// (ErrEventNotFound) and a transaction that cannot commit.
func (i *Issuer) Issue(ctx context.Context, eventID, userID uint64, requestedTypeID *uint64) (model.Ticket, error) {
	var ticket model.Ticket

	err := i.store.WithTx(ctx, func(txCtx context.Context) error {
		// Locking the event row makes the zero-types check and the default
		// provisioning below atomic with respect to concurrent issuers on
		// the same event.
		ev, err := i.store.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		tt, err := i.resolveType(txCtx, ev, requestedTypeID)
		if err != nil {
			return err
		}

		ticket = model.Ticket{
			EventID:      ev.ID,
			UserID:       userID,
			TicketTypeID: tt.ID,
			Status:       model.TicketStatusRegistered,
			PriceCents:   tt.PriceCents,
			PurchasedAt:  i.clock.Now(),
		}
		return i.store.CreateTicket(txCtx, &ticket)
	})
	if err != nil {
		if err == ErrEventNotFound {
			return model.Ticket{}, err
		}
		return model.Ticket{}, fmt.Errorf("issue ticket: %w", err)
	}
	return ticket, nil
}

// resolveType picks the ticket type to issue against, in order: the
// requested type scoped to the event, the event's first-created type,
// or General Admission from a newly provisioned default catalog.
func (i *Issuer) resolveType(ctx context.Context, ev model.Event, requestedTypeID *uint64) (model.TicketType, error) {
	if requestedTypeID != nil {
		tt, err := i.store.GetTicketType(ctx, ev.ID, *requestedTypeID)
		if err != nil {
			return model.TicketType{}, err
		}
		if tt != nil {
			return *tt, nil
		}
		// Not found within this event: degrade to default resolution.
		i.log.Printf("ticketing: ticket type %d not found for event %d, using default tier", *requestedTypeID, ev.ID)
	}

	types, err := i.store.ListTicketTypes(ctx, ev.ID)
	if err != nil {
		return model.TicketType{}, err
	}
	if len(types) > 0 {
		// First-created tier is the default by convention.
		return types[0], nil
	}
	return ProvisionDefaultTypes(ctx, i.store, ev)
}
