package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"panelwise/models"
	"panelwise/utils"
)

// window is a half-open [Start, End) span in the reference timezone.
type window struct {
	Start time.Time
	End   time.Time
}

func (w window) view() *models.WindowView {
	return &models.WindowView{
		Start:      w.Start,
		End:        w.End,
		StartLabel: utils.FormatClock12h(w.Start),
		EndLabel:   utils.FormatClock12h(w.End),
	}
}

// dedupeIDs drops blank and repeated ids, preserving first-seen order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// validateRequestBasics runs the structural checks shared by every
// public entry point. It runs before any network call and fails fast.
func (s *DefaultSchedulingService) validateRequestBasics(ids []string, date, zone string) ([]string, time.Time, *time.Location, error) {
	deduped := dedupeIDs(ids)
	if len(deduped) == 0 {
		return nil, time.Time{}, nil, NewError(KindBadRequest, "at least one participant is required")
	}
	if !s.Zones.Validate(zone) {
		return nil, time.Time{}, nil, NewError(KindBadRequest, "%q is not a recognized timezone", zone)
	}
	refLoc := s.Zones.Location(zone)
	day, err := utils.ParseDateInZone(date, refLoc)
	if err != nil {
		return nil, time.Time{}, nil, NewError(KindBadRequest, "%q is not a valid date, expected YYYY-MM-DD", date)
	}
	return deduped, day, refLoc, nil
}

// resolveParticipants looks the panel up in the directory; any missing
// id is a not-found error.
func (s *DefaultSchedulingService) resolveParticipants(ctx context.Context, ids []string) ([]models.Participant, error) {
	participants, err := s.Directory.Lookup(ctx, ids)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, ctxAbortError(ctx, "resolving participants")
		}
		return nil, NewError(KindProviderError, "the participant directory is unavailable")
	}
	if len(participants) != len(ids) {
		found := make(map[string]struct{}, len(participants))
		for _, p := range participants {
			found[p.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, NewError(KindNotFound, "no participant exists with id %s", id)
			}
		}
	}
	return participants, nil
}

// commonWorkingWindow computes the panel's shared working window on day,
// expressed in the reference zone. The first return is false when day is
// not a working day for every participant. A true first return with a
// nil window means the working windows do not intersect on that date.
//
// A participant whose converted window crosses a calendar-date line
// relative to day contributes zero availability: their local working
// hours do not land on that date at all in the reference zone.
func (s *DefaultSchedulingService) commonWorkingWindow(day time.Time, refLoc *time.Location, participants []models.Participant, hoursByID map[string]models.WorkingHours) (bool, *window) {
	weekday := day.Weekday()
	for _, p := range participants {
		if !hoursByID[p.ID].WorksOn(weekday) {
			return false, nil
		}
	}

	dateStr := utils.FormatISODate(day)
	var haveBounds bool
	var latestStart, earliestEnd time.Time
	for _, p := range participants {
		wh := hoursByID[p.ID]
		loc := s.Zones.Location(wh.Zone)
		start := utils.MinutesOnDate(day, wh.Start, loc).In(refLoc)
		end := utils.MinutesOnDate(day, wh.End, loc).In(refLoc)

		// Date-shift check: both converted boundaries must stay on the
		// target date in the reference zone.
		if utils.FormatISODate(start) != dateStr || utils.FormatISODate(end) != dateStr {
			return true, nil
		}

		if !haveBounds || start.After(latestStart) {
			latestStart = start
		}
		if !haveBounds || end.Before(earliestEnd) {
			earliestEnd = end
		}
		haveBounds = true
	}

	if !latestStart.Before(earliestEnd) {
		return true, nil
	}
	return true, &window{Start: latestStart, End: earliestEnd}
}

// fullDayWindow is the [00:00, 24:00) span of day in the reference zone.
func fullDayWindow(day time.Time) *window {
	return &window{Start: day, End: day.AddDate(0, 0, 1)}
}
