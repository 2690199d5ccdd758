package handler

import (
	"testing"
	"time"
)

func TestParseEventReq(t *testing.T) {
	t.Parallel()

	starts := "2026-09-01T18:00:00Z"
	ends := "2026-09-01T22:00:00Z"

	cases := []struct {
		name    string
		req     eventReq
		wantErr string
	}{
		{"valid", eventReq{Title: "Expo", StartsAt: starts, EndsAt: ends, Status: "PUBLISHED"}, ""},
		{"default status", eventReq{Title: "Expo", StartsAt: starts, EndsAt: ends}, ""},
		{"missing title", eventReq{StartsAt: starts, EndsAt: ends}, "title is required"},
		{"blank title", eventReq{Title: "   ", StartsAt: starts, EndsAt: ends}, "title is required"},
		{"bad starts_at", eventReq{Title: "Expo", StartsAt: "tomorrow", EndsAt: ends}, "starts_at must be RFC3339"},
		{"bad ends_at", eventReq{Title: "Expo", StartsAt: starts, EndsAt: "late"}, "ends_at must be RFC3339"},
		{"ends before starts", eventReq{Title: "Expo", StartsAt: ends, EndsAt: starts}, "ends_at must be after starts_at"},
		{"equal times", eventReq{Title: "Expo", StartsAt: starts, EndsAt: starts}, "ends_at must be after starts_at"},
		{"unknown status", eventReq{Title: "Expo", StartsAt: starts, EndsAt: ends, Status: "SOON"}, "status must be DRAFT, PUBLISHED or CANCELLED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, msg := parseEventReq(tc.req)
			if msg != tc.wantErr {
				t.Fatalf("msg = %q, want %q", msg, tc.wantErr)
			}
			if tc.wantErr != "" {
				return
			}
			if ev.Title != "Expo" {
				t.Errorf("title = %q", ev.Title)
			}
			if ev.StartsAt.Location() != time.UTC {
				t.Error("starts_at not normalized to UTC")
			}
			if tc.req.Status == "" && ev.Status != "DRAFT" {
				t.Errorf("default status = %q, want DRAFT", ev.Status)
			}
		})
	}
}

func TestParseTicketTypeReq(t *testing.T) {
	t.Parallel()

	tt, msg := parseTicketTypeReq(ticketTypeReq{Name: "Early Bird", PriceCents: 1500, Quantity: 100})
	if msg != "" {
		t.Fatalf("unexpected error %q", msg)
	}
	if tt.Status != "ACTIVE" {
		t.Errorf("default status = %q, want ACTIVE", tt.Status)
	}

	if _, msg := parseTicketTypeReq(ticketTypeReq{Name: "  "}); msg != "name is required" {
		t.Errorf("blank name: msg = %q", msg)
	}
	if _, msg := parseTicketTypeReq(ticketTypeReq{Name: "VIP", Status: "CHEAP"}); msg == "" {
		t.Error("unknown status accepted")
	}
}
