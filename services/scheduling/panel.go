package scheduling

import (
	"context"
	"sort"
	"time"

	"panelwise/models"
	"panelwise/utils"
)

// GetPanelEvents produces the display view of a panel's day: every
// participant's events converted to the reference zone, plus whether the
// date is a common working day and, if so, the common working window.
// The window comes from the same subroutine the engine uses, so what is
// displayed always matches what the engine would compute.
func (s *DefaultSchedulingService) GetPanelEvents(ctx context.Context, ids []string, date, zone string) (models.PanelEventsResult, error) {
	deduped, day, refLoc, err := s.validateRequestBasics(ids, date, zone)
	if err != nil {
		return models.PanelEventsResult{}, err
	}

	participants, err := s.resolveParticipants(ctx, deduped)
	if err != nil {
		return models.PanelEventsResult{}, err
	}

	hoursByID, err := s.fetchAllWorkingHours(ctx, participants)
	if err != nil {
		return models.PanelEventsResult{}, err
	}

	span := fullDayWindow(day)
	busyByID, err := s.fetchAllBusyIntervals(ctx, participants, span.Start.UTC(), span.End.UTC())
	if err != nil {
		return models.PanelEventsResult{}, err
	}

	events := make(map[string][]models.PanelEvent, len(participants))
	for _, p := range participants {
		views := make([]models.PanelEvent, 0, len(busyByID[p.ID]))
		for _, b := range busyByID[p.ID] {
			views = append(views, panelEventView(b, refLoc))
		}
		sort.Slice(views, func(i, j int) bool { return views[i].Start.Before(views[j].Start) })
		events[p.ID] = views
	}

	result := models.PanelEventsResult{EventsByParticipant: events}
	isCommonDay, win := s.commonWorkingWindow(day, refLoc, participants, hoursByID)
	result.IsCommonWorkingDay = isCommonDay
	if win != nil {
		result.CommonWindow = win.view()
	}
	return result, nil
}

// panelEventView converts one busy interval into its reference-zone
// display form.
func panelEventView(b models.BusyInterval, refLoc *time.Location) models.PanelEvent {
	start := b.Start.In(refLoc)
	end := b.End.In(refLoc)
	return models.PanelEvent{
		Label:      b.Label,
		Start:      start,
		End:        end,
		StartLabel: utils.FormatClock12h(start),
		EndLabel:   utils.FormatClock12h(end),
	}
}
