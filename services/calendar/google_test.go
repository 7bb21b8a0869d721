package calendar

import (
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

func TestEventSpanTimedEvent(t *testing.T) {
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{DateTime: "2025-06-17T10:00:00+05:30"},
		End:   &gcal.EventDateTime{DateTime: "2025-06-17T11:00:00+05:30"},
	}
	start, end, ok := eventSpan(ev, time.UTC)
	if !ok {
		t.Fatal("expected timed event to parse")
	}
	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Error("spans must be normalized to UTC")
	}
	if start.Hour() != 4 || start.Minute() != 30 {
		t.Errorf("expected 04:30 UTC, got %s", start)
	}
	if end.Sub(start) != time.Hour {
		t.Errorf("expected 1h span, got %s", end.Sub(start))
	}
}

func TestEventSpanAllDayEvent(t *testing.T) {
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{Date: "2025-06-17"},
		End:   &gcal.EventDateTime{Date: "2025-06-18"},
	}
	start, end, ok := eventSpan(ev, time.UTC)
	if !ok {
		t.Fatal("expected all-day event to parse")
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("expected 24h span, got %s", end.Sub(start))
	}
}

func TestEventSpanAllDayEventUsesCalendarZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{Date: "2025-06-17"},
		End:   &gcal.EventDateTime{Date: "2025-06-18"},
	}
	start, _, ok := eventSpan(ev, kolkata)
	if !ok {
		t.Fatal("expected all-day event to parse")
	}
	// Midnight June 17 in Kolkata is 18:30 June 16 UTC.
	want := time.Date(2025, 6, 16, 18, 30, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected %s, got %s", want, start)
	}
}

func TestEventSpanAllDayEventPrefersEventZone(t *testing.T) {
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{Date: "2025-06-17", TimeZone: "America/New_York"},
		End:   &gcal.EventDateTime{Date: "2025-06-18", TimeZone: "America/New_York"},
	}
	start, _, ok := eventSpan(ev, time.UTC)
	if !ok {
		t.Fatal("expected all-day event to parse")
	}
	// Midnight June 17 in New York (EDT) is 04:00 June 17 UTC.
	want := time.Date(2025, 6, 17, 4, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected %s, got %s", want, start)
	}
}

func TestEventSpanRejectsMalformedEvents(t *testing.T) {
	cases := []*gcal.Event{
		{},
		{Start: &gcal.EventDateTime{DateTime: "2025-06-17T10:00:00Z"}},
		{
			Start: &gcal.EventDateTime{DateTime: "garbage"},
			End:   &gcal.EventDateTime{DateTime: "2025-06-17T11:00:00Z"},
		},
		{
			Start: &gcal.EventDateTime{DateTime: "2025-06-17T11:00:00Z"},
			End:   &gcal.EventDateTime{DateTime: "2025-06-17T10:00:00Z"},
		},
	}
	for i, ev := range cases {
		if _, _, ok := eventSpan(ev, time.UTC); ok {
			t.Errorf("case %d: expected malformed event to be rejected", i)
		}
	}
}
