package ticketing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/model"
)

var issuedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testEvent() model.Event {
	return model.Event{ID: 10, OwnerID: 7, Title: "GopherCon", Status: "PUBLISHED"}
}

func newTestIssuer(s *fakeStore) (*Issuer, *captureLogger) {
	lg := &captureLogger{}
	return NewIssuer(s, clock.NewFixed(issuedAt), WithIssuerLogger(lg)), lg
}

func TestIssueRequestedType(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	s.addType(model.TicketType{EventID: 10, Name: "Early Bird", PriceCents: 1500, Status: model.TicketTypeStatusActive})
	vip := s.addType(model.TicketType{EventID: 10, Name: "VIP", PriceCents: 9000, Status: model.TicketTypeStatusActive})
	issuer, _ := newTestIssuer(s)

	ticket, err := issuer.Issue(context.Background(), 10, 42, &vip.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if ticket.TicketTypeID != vip.ID {
		t.Errorf("ticket type = %d, want requested %d", ticket.TicketTypeID, vip.ID)
	}
	if ticket.PriceCents != 9000 {
		t.Errorf("price = %d, want snapshot 9000", ticket.PriceCents)
	}
	if ticket.Status != model.TicketStatusRegistered {
		t.Errorf("status = %q, want %q", ticket.Status, model.TicketStatusRegistered)
	}
	if !ticket.PurchasedAt.Equal(issuedAt) {
		t.Errorf("purchased at = %v, want %v", ticket.PurchasedAt, issuedAt)
	}
	if ticket.ID == 0 {
		t.Error("ticket was not persisted")
	}
}

func TestIssueDefaultsToFirstCreatedType(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	first := s.addType(model.TicketType{EventID: 10, Name: "Standard", PriceCents: 2000, Status: model.TicketTypeStatusActive})
	s.addType(model.TicketType{EventID: 10, Name: "VIP", PriceCents: 9000, Status: model.TicketTypeStatusActive})
	issuer, _ := newTestIssuer(s)

	ticket, err := issuer.Issue(context.Background(), 10, 42, nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if ticket.TicketTypeID != first.ID {
		t.Errorf("ticket type = %d, want first-created %d", ticket.TicketTypeID, first.ID)
	}
	if ticket.PriceCents != 2000 {
		t.Errorf("price = %d, want 2000", ticket.PriceCents)
	}
}

func TestIssueUnknownRequestedTypeFallsBack(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	first := s.addType(model.TicketType{EventID: 10, Name: "Standard", PriceCents: 2000, Status: model.TicketTypeStatusActive})
	issuer, lg := newTestIssuer(s)

	bogus := uint64(999)
	ticket, err := issuer.Issue(context.Background(), 10, 42, &bogus)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if ticket.TicketTypeID != first.ID {
		t.Errorf("ticket type = %d, want fallback %d", ticket.TicketTypeID, first.ID)
	}
	if len(lg.lines) == 0 || !strings.Contains(lg.lines[0], "not found") {
		t.Errorf("fallback was not logged, got %v", lg.lines)
	}
}

func TestIssueRequestedTypeScopedToEvent(t *testing.T) {
	t.Parallel()

	other := model.Event{ID: 11, OwnerID: 8, Title: "Other", Status: "PUBLISHED"}
	s := newFakeStore(testEvent(), other)
	foreign := s.addType(model.TicketType{EventID: 11, Name: "Foreign", PriceCents: 100, Status: model.TicketTypeStatusActive})
	own := s.addType(model.TicketType{EventID: 10, Name: "Own", PriceCents: 2000, Status: model.TicketTypeStatusActive})
	issuer, _ := newTestIssuer(s)

	// Requesting another event's type id must not leak across events.
	ticket, err := issuer.Issue(context.Background(), 10, 42, &foreign.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if ticket.TicketTypeID != own.ID {
		t.Errorf("ticket type = %d, want own event's %d", ticket.TicketTypeID, own.ID)
	}
}

func TestIssueProvisionsDefaultCatalog(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	issuer, _ := newTestIssuer(s)

	ticket, err := issuer.Issue(context.Background(), 10, 42, nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	types, _ := s.ListTicketTypes(context.Background(), 10)
	if len(types) != 3 {
		t.Fatalf("provisioned %d types, want 3", len(types))
	}
	want := []struct {
		name  string
		price uint32
		qty   uint32
	}{
		{"General Admission", 0, 0},
		{"Premium", 2500, 50},
		{"VIP", 5000, 20},
	}
	for i, w := range want {
		tt := types[i]
		if tt.Name != w.name || tt.PriceCents != w.price || tt.Quantity != w.qty {
			t.Errorf("type[%d] = %s/%d/%d, want %s/%d/%d",
				i, tt.Name, tt.PriceCents, tt.Quantity, w.name, w.price, w.qty)
		}
		if tt.Status != model.TicketTypeStatusActive {
			t.Errorf("type[%d] status = %q, want ACTIVE", i, tt.Status)
		}
		if tt.CreatedBy != 7 {
			t.Errorf("type[%d] created by %d, want event owner 7", i, tt.CreatedBy)
		}
	}

	// The ticket goes against General Admission at price zero.
	if ticket.TicketTypeID != types[0].ID {
		t.Errorf("ticket type = %d, want General Admission %d", ticket.TicketTypeID, types[0].ID)
	}
	if ticket.PriceCents != 0 {
		t.Errorf("price = %d, want 0", ticket.PriceCents)
	}
}

func TestIssueDoesNotReprovisionExistingCatalog(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	issuer, _ := newTestIssuer(s)

	if _, err := issuer.Issue(context.Background(), 10, 42, nil); err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	if _, err := issuer.Issue(context.Background(), 10, 43, nil); err != nil {
		t.Fatalf("second Issue: %v", err)
	}
	types, _ := s.ListTicketTypes(context.Background(), 10)
	if len(types) != 3 {
		t.Errorf("catalog has %d types after two issues, want 3", len(types))
	}
}

func TestIssueEventNotFound(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	issuer, _ := newTestIssuer(s)

	_, err := issuer.Issue(context.Background(), 99, 42, nil)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
	if len(s.ticks) != 0 {
		t.Error("ticket created for missing event")
	}
}

func TestIssuePriceSnapshotSurvivesTierChange(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	tier := s.addType(model.TicketType{EventID: 10, Name: "Standard", PriceCents: 2000, Status: model.TicketTypeStatusActive})
	issuer, _ := newTestIssuer(s)

	ticket, err := issuer.Issue(context.Background(), 10, 42, &tier.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Reprice the tier after issuance.
	s.mu.Lock()
	for i := range s.types {
		if s.types[i].ID == tier.ID {
			s.types[i].PriceCents = 5000
		}
	}
	s.mu.Unlock()

	if s.ticks[0].PriceCents != 2000 || ticket.PriceCents != 2000 {
		t.Errorf("issued price changed after tier reprice, got %d", s.ticks[0].PriceCents)
	}
}

func TestIssueStorageFailure(t *testing.T) {
	t.Parallel()

	s := newFakeStore(testEvent())
	s.addType(model.TicketType{EventID: 10, Name: "Standard", PriceCents: 2000, Status: model.TicketTypeStatusActive})
	s.createTicketErr = errors.New("disk full")
	issuer, _ := newTestIssuer(s)

	_, err := issuer.Issue(context.Background(), 10, 42, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrEventNotFound) {
		t.Fatalf("storage failure misreported as not-found: %v", err)
	}
}
