package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"panelwise/models"
	"panelwise/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleBusyProvider reads a participant's events from Google Calendar.
// The participant's email is the calendar identifier; the service
// account must have read visibility on panel members' calendars.
type GoogleBusyProvider struct {
	svc *gcal.Service
}

// NewGoogleBusyProvider builds a calendar client from a service-account
// credentials file.
func NewGoogleBusyProvider(ctx context.Context, credentialsFile string) (*GoogleBusyProvider, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleBusyProvider{svc: svc}, nil
}

// FetchBusyIntervals lists the participant's events intersecting
// [fromUTC, toUTC), expanded to single instances, as UTC busy ranges.
// Transparent ("free") events are skipped.
func (g *GoogleBusyProvider) FetchBusyIntervals(ctx context.Context, participant models.Participant, fromUTC, toUTC time.Time) ([]models.BusyInterval, error) {
	logger := utils.GetLogger()

	events, err := g.svc.Events.List(participant.Email).
		TimeMin(fromUTC.Format(time.RFC3339)).
		TimeMax(toUTC.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && (gerr.Code == 401 || gerr.Code == 403) {
			return nil, fmt.Errorf("calendar access denied for %s: %w", participant.Email, err)
		}
		return nil, fmt.Errorf("calendar listing failed for %s: %w", participant.Email, err)
	}

	calLoc := locationOrUTC(events.TimeZone)

	var intervals []models.BusyInterval
	for _, ev := range events.Items {
		if ev.Transparency == "transparent" || ev.Status == "cancelled" {
			continue
		}
		start, end, ok := eventSpan(ev, calLoc)
		if !ok {
			logger.Debug("skipping event with unparseable times",
				zap.String("participantID", participant.ID), zap.String("eventID", ev.Id))
			continue
		}
		intervals = append(intervals, models.BusyInterval{
			ParticipantID: participant.ID,
			Start:         start,
			End:           end,
			Label:         ev.Summary,
		})
	}
	return intervals, nil
}

// eventSpan extracts an event's UTC span. Timed events carry RFC3339
// datetimes; all-day events carry bare dates, which block the whole
// local day in the event's zone (falling back to calLoc, the calendar's
// own zone) rather than a UTC-midnight-aligned day.
func eventSpan(ev *gcal.Event, calLoc *time.Location) (time.Time, time.Time, bool) {
	if ev.Start == nil || ev.End == nil {
		return time.Time{}, time.Time{}, false
	}
	if ev.Start.DateTime != "" && ev.End.DateTime != "" {
		start, err1 := time.Parse(time.RFC3339, ev.Start.DateTime)
		end, err2 := time.Parse(time.RFC3339, ev.End.DateTime)
		if err1 != nil || err2 != nil || !start.Before(end) {
			return time.Time{}, time.Time{}, false
		}
		return start.UTC(), end.UTC(), true
	}
	if ev.Start.Date != "" && ev.End.Date != "" {
		loc := calLoc
		if ev.Start.TimeZone != "" {
			loc = locationOrUTC(ev.Start.TimeZone)
		}
		start, err1 := time.ParseInLocation(utils.ISODateLayout, ev.Start.Date, loc)
		end, err2 := time.ParseInLocation(utils.ISODateLayout, ev.End.Date, loc)
		if err1 != nil || err2 != nil || !start.Before(end) {
			return time.Time{}, time.Time{}, false
		}
		return start.UTC(), end.UTC(), true
	}
	return time.Time{}, time.Time{}, false
}

func locationOrUTC(zone string) *time.Location {
	if zone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}
