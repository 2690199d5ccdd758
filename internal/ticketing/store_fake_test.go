package ticketing

import (
	"context"
	"fmt"
	"sync"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// fakeStore is an in-memory Store for exercising issuance and
// withdrawal without a database.  Error fields allow individual
// operations to be failed on demand.
type fakeStore struct {
	mu sync.Mutex

	events map[uint64]model.Event
	types  []model.TicketType
	ticks  []model.Ticket

	nextTypeID   uint64
	nextTicketID uint64

	txErr           error // returned by WithTx after fn succeeds
	createTicketErr error
	deleteErr       error
}

func newFakeStore(events ...model.Event) *fakeStore {
	s := &fakeStore{
		events:       make(map[uint64]model.Event),
		nextTypeID:   1,
		nextTicketID: 1,
	}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	return s
}

func (s *fakeStore) addType(tt model.TicketType) model.TicketType {
	s.mu.Lock()
	defer s.mu.Unlock()
	tt.ID = s.nextTypeID
	s.nextTypeID++
	s.types = append(s.types, tt)
	return tt
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return s.txErr
}

func (s *fakeStore) GetEventForUpdate(_ context.Context, eventID uint64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return ev, nil
}

func (s *fakeStore) ListTicketTypes(_ context.Context, eventID uint64) ([]model.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TicketType
	for _, tt := range s.types {
		if tt.EventID == eventID {
			out = append(out, tt)
		}
	}
	return out, nil
}

func (s *fakeStore) GetTicketType(_ context.Context, eventID, typeID uint64) (*model.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.types {
		if s.types[i].ID == typeID && s.types[i].EventID == eventID {
			tt := s.types[i]
			return &tt, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateTicketType(_ context.Context, tt *model.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tt.ID = s.nextTypeID
	s.nextTypeID++
	s.types = append(s.types, *tt)
	return nil
}

func (s *fakeStore) CreateTicket(_ context.Context, t *model.Ticket) error {
	if s.createTicketErr != nil {
		return s.createTicketErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextTicketID
	s.nextTicketID++
	s.ticks = append(s.ticks, *t)
	return nil
}

func (s *fakeStore) DeleteTickets(_ context.Context, eventID, userID uint64) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.Ticket
	var removed int64
	for _, t := range s.ticks {
		if t.EventID == eventID && t.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.ticks = kept
	return removed, nil
}

// captureLogger records Printf output for assertions.
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}
