package ticketing

import "context"

// Withdrawer removes all of a user's tickets for an event.  Ticket
// cleanup is best-effort: callers composing this into a larger
// remove-participant workflow must never have that workflow aborted by
// a ticket-deletion failure, so errors are converted to a boolean at
// this boundary.
type Withdrawer struct {
	store Store
	log   Logger
}

// WithdrawerOption customises a Withdrawer.
type WithdrawerOption func(*Withdrawer)

// WithWithdrawerLogger overrides the diagnostic sink.
func WithWithdrawerLogger(l Logger) WithdrawerOption {
	return func(w *Withdrawer) { w.log = l }
}

// NewWithdrawer constructs a Withdrawer.  Store must be non-nil.
func NewWithdrawer(store Store, opts ...WithdrawerOption) *Withdrawer {
	if store == nil {
		panic("nil store passed to NewWithdrawer")
	}
	w := &Withdrawer{store: store, log: stdLogger{}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Withdraw deletes every ticket held by userID for eventID inside one
// transaction and reports whether the operation completed.  Zero
// matching tickets is success.  Any storage failure is logged with the
// event and user ids and reported as false; it is never propagated.
func (w *Withdrawer) Withdraw(ctx context.Context, eventID, userID uint64) bool {
	err := w.store.WithTx(ctx, func(txCtx context.Context) error {
		_, err := w.store.DeleteTickets(txCtx, eventID, userID)
		return err
	})
	if err != nil {
		w.log.Printf("ticketing: withdraw failed event=%d user=%d: %v", eventID, userID, err)
		return false
	}
	return true
}
