package scheduling

import (
	"context"

	"panelwise/models"
	"panelwise/utils"
)

// CheckCustomSlot validates one ad-hoc proposed interval. Checks run in
// increasing cost order so cheap rejections short-circuit before any
// calendar call: structure, then working-hours policy (unless
// overridden), then real conflicts. Policy and conflict rejections are
// successful responses with Available=false.
func (s *DefaultSchedulingService) CheckCustomSlot(ctx context.Context, req models.ConflictCheckRequest) (models.ConflictCheckResult, error) {
	ids, day, refLoc, err := s.validateRequestBasics(req.ParticipantIDs, req.Date, req.Timezone)
	if err != nil {
		return models.ConflictCheckResult{}, err
	}

	start, perr := utils.ParseStampInZone(req.Start, refLoc)
	if perr != nil {
		return models.ConflictCheckResult{}, NewError(KindBadRequest, "%q is not a valid start time", req.Start)
	}
	end, perr := utils.ParseStampInZone(req.End, refLoc)
	if perr != nil {
		return models.ConflictCheckResult{}, NewError(KindBadRequest, "%q is not a valid end time", req.End)
	}
	if !end.After(start) {
		return models.ConflictCheckResult{}, NewError(KindBadRequest, "the end time must be after the start time")
	}
	dateStr := utils.FormatISODate(day)
	if utils.FormatISODate(start) != dateStr || utils.FormatISODate(end) != dateStr {
		return models.ConflictCheckResult{}, NewError(KindBadRequest, "the proposed time must fall entirely on %s", dateStr)
	}

	participants, err := s.resolveParticipants(ctx, ids)
	if err != nil {
		return models.ConflictCheckResult{}, err
	}

	if !req.Override {
		hoursByID, err := s.fetchAllWorkingHours(ctx, participants)
		if err != nil {
			return models.ConflictCheckResult{}, err
		}
		isCommonDay, win := s.commonWorkingWindow(day, refLoc, participants, hoursByID)
		if !isCommonDay {
			return models.ConflictCheckResult{
				Available: false,
				Reason:    "the selected date is not a working day for the whole panel",
			}, nil
		}
		if win == nil || start.Before(win.Start) || end.After(win.End) {
			return models.ConflictCheckResult{
				Available: false,
				Reason:    "the proposed time is outside the panel's common working hours",
			}, nil
		}
	}

	busyByID, err := s.fetchAllBusyIntervals(ctx, participants, start.UTC(), end.UTC())
	if err != nil {
		return models.ConflictCheckResult{}, err
	}

	var conflicts []models.ParticipantConflicts
	for _, p := range participants {
		var events []models.PanelEvent
		for _, b := range busyByID[p.ID] {
			if b.Overlaps(start, end) {
				events = append(events, panelEventView(b, refLoc))
			}
		}
		if len(events) > 0 {
			conflicts = append(conflicts, models.ParticipantConflicts{
				ParticipantID: p.ID,
				Name:          p.Name,
				Events:        events,
			})
		}
	}
	if len(conflicts) > 0 {
		return models.ConflictCheckResult{
			Available: false,
			Reason:    "one or more participants already have events at that time",
			Conflicts: conflicts,
		}, nil
	}

	return models.ConflictCheckResult{Available: true}, nil
}
