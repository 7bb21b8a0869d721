package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"panelwise/models"
	"panelwise/utils"
)

// maxDurationMinutes bounds a slot at one full day; nothing longer can
// fit any window this service produces, and an unbounded duration would
// overflow the quantization step.
const maxDurationMinutes = 24 * 60

func validateDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return NewError(KindBadRequest, "duration must be a positive number of minutes")
	}
	if durationMinutes > maxDurationMinutes {
		return NewError(KindBadRequest, "duration must not exceed 24 hours")
	}
	return nil
}

// ComputeAvailableSlots computes working-hours-gated slots for a panel:
// the common working window across all participants on the target date,
// quantized into fixed-duration slots, minus anything that collides with
// a busy interval.
func (s *DefaultSchedulingService) ComputeAvailableSlots(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	ids, day, refLoc, err := s.validateRequestBasics(req.ParticipantIDs, req.Date, req.Timezone)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return models.AvailabilityResult{}, err
	}

	participants, err := s.resolveParticipants(ctx, ids)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	hoursByID, err := s.fetchAllWorkingHours(ctx, participants)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	note := profileNote(participants, hoursByID)

	isCommonDay, win := s.commonWorkingWindow(day, refLoc, participants, hoursByID)
	if !isCommonDay {
		return models.AvailabilityResult{
			Slots: []models.Slot{},
			Note:  joinNotes(note, "the selected date is not a working day for the whole panel"),
		}, nil
	}
	if win == nil {
		return models.AvailabilityResult{
			Slots: []models.Slot{},
			Note:  joinNotes(note, "the panel's working hours do not overlap on the selected date"),
		}, nil
	}

	return s.slotsWithinWindow(ctx, participants, *win, req.DurationMinutes, note)
}

// ComputeAllSlots computes full-day slots: the window is fixed to
// [00:00, 24:00) in the reference zone and working hours are ignored,
// but busy-interval filtering still applies.
func (s *DefaultSchedulingService) ComputeAllSlots(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error) {
	ids, day, _, err := s.validateRequestBasics(req.ParticipantIDs, req.Date, req.Timezone)
	if err != nil {
		return models.AvailabilityResult{}, err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return models.AvailabilityResult{}, err
	}

	participants, err := s.resolveParticipants(ctx, ids)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	return s.slotsWithinWindow(ctx, participants, *fullDayWindow(day), req.DurationMinutes, "")
}

// slotsWithinWindow runs the shared tail of both modes: quantize the
// window, fetch busy intervals covering it, drop conflicting slots.
func (s *DefaultSchedulingService) slotsWithinWindow(ctx context.Context, participants []models.Participant, win window, durationMinutes int, note string) (models.AvailabilityResult, error) {
	candidates := quantizeWindow(win, durationMinutes)
	if len(candidates) == 0 {
		return models.AvailabilityResult{Slots: []models.Slot{}, Note: note}, nil
	}

	busyByID, err := s.fetchAllBusyIntervals(ctx, participants, win.Start.UTC(), win.End.UTC())
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	kept := make([]models.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if !anyConflict(slot.Start, slot.End, busyByID) {
			kept = append(kept, slot)
		}
	}
	return models.AvailabilityResult{Slots: kept, Note: note}, nil
}

// quantizeWindow cuts the window into consecutive slots of exactly
// durationMinutes, starting at the window start. A trailing partial slot
// is discarded.
func quantizeWindow(win window, durationMinutes int) []models.Slot {
	d := time.Duration(durationMinutes) * time.Minute
	var slots []models.Slot
	for start := win.Start; ; start = start.Add(d) {
		end := start.Add(d)
		if end.After(win.End) {
			break
		}
		slots = append(slots, newSlot(start, end))
	}
	return slots
}

func newSlot(start, end time.Time) models.Slot {
	return models.Slot{
		Date:       utils.FormatISODate(start),
		Start:      start,
		End:        end,
		StartLabel: utils.FormatClock12h(start),
		EndLabel:   utils.FormatClock12h(end),
	}
}

// anyConflict applies the half-open overlap test against every busy
// interval of every participant.
func anyConflict(start, end time.Time, busyByID map[string][]models.BusyInterval) bool {
	for _, intervals := range busyByID {
		for _, b := range intervals {
			if b.Overlaps(start, end) {
				return true
			}
		}
	}
	return false
}

// profileNote summarizes the degraded-data substitutions made while
// fetching the panel's working hours, for display alongside the result.
func profileNote(participants []models.Participant, hoursByID map[string]models.WorkingHours) string {
	var parts []string
	for _, p := range participants {
		wh := hoursByID[p.ID]
		switch {
		case wh.Defaulted:
			parts = append(parts, fmt.Sprintf("default working hours (Mon-Fri 09:00-17:00 UTC) assumed for %s", p.Name))
		case wh.ZoneDegraded:
			parts = append(parts, fmt.Sprintf("timezone for %s was not recognized, UTC assumed", p.Name))
		}
	}
	return strings.Join(parts, "; ")
}

func joinNotes(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "; " + b
}
