package ticketing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestWithdrawRemovesAllUserTickets(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	s.ticks = []model.Ticket{
		{ID: 1, EventID: 10, UserID: 42, Status: model.TicketStatusRegistered},
		{ID: 2, EventID: 10, UserID: 42, Status: model.TicketStatusRegistered},
		{ID: 3, EventID: 10, UserID: 99, Status: model.TicketStatusRegistered}, // other user
		{ID: 4, EventID: 11, UserID: 42, Status: model.TicketStatusRegistered}, // other event
	}
	w := NewWithdrawer(s)

	if ok := w.Withdraw(context.Background(), 10, 42); !ok {
		t.Fatal("Withdraw returned false")
	}
	if len(s.ticks) != 2 {
		t.Fatalf("%d tickets remain, want 2", len(s.ticks))
	}
	for _, tk := range s.ticks {
		if tk.EventID == 10 && tk.UserID == 42 {
			t.Errorf("ticket %d for (10, 42) survived withdrawal", tk.ID)
		}
	}
}

func TestWithdrawNoTicketsIsSuccess(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	w := NewWithdrawer(s)

	if ok := w.Withdraw(context.Background(), 10, 42); !ok {
		t.Error("Withdraw of zero tickets should succeed")
	}
}

func TestWithdrawStorageFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	s.ticks = []model.Ticket{{ID: 1, EventID: 10, UserID: 42}}
	s.deleteErr = errors.New("connection reset")
	lg := &captureLogger{}
	w := NewWithdrawer(s, WithWithdrawerLogger(lg))

	if ok := w.Withdraw(context.Background(), 10, 42); ok {
		t.Error("Withdraw should report false on storage failure")
	}
	if len(lg.lines) != 1 || !strings.Contains(lg.lines[0], "event=10 user=42") {
		t.Errorf("failure was not logged with ids, got %v", lg.lines)
	}
}

func TestWithdrawCommitFailure(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	s.txErr = errors.New("commit failed")
	w := NewWithdrawer(s)

	if ok := w.Withdraw(context.Background(), 10, 42); ok {
		t.Error("Withdraw should report false when the transaction cannot commit")
	}
}
