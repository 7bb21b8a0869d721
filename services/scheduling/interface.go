package scheduling

import (
	"context"
	"time"

	participantRepo "panelwise/database/repository/participant"
	"panelwise/models"
	"panelwise/services/timezone"
)

// WorkingHoursProvider returns a participant's working days/hours/zone.
// Implementations must absorb provider failures and hand back the fixed
// default instead: one incomplete profile must not block the panel.
type WorkingHoursProvider interface {
	FetchWorkingHours(ctx context.Context, participant models.Participant) models.WorkingHours
}

// BusyIntervalsProvider returns a participant's busy ranges (UTC) for a
// requested span, from an external calendar backend.
type BusyIntervalsProvider interface {
	FetchBusyIntervals(ctx context.Context, participant models.Participant, fromUTC, toUTC time.Time) ([]models.BusyInterval, error)
}

// SchedulingService is the public surface of the scheduling core.
type SchedulingService interface {
	// ComputeAvailableSlots returns working-hours-gated slots for a panel.
	ComputeAvailableSlots(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error)
	// ComputeAllSlots returns full-day slots; only busy intervals gate.
	ComputeAllSlots(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResult, error)
	// CheckCustomSlot validates one proposed interval against policy and
	// calendar conflicts.
	CheckCustomSlot(ctx context.Context, req models.ConflictCheckRequest) (models.ConflictCheckResult, error)
	// GetPanelEvents lists each participant's events on a date, converted
	// to the reference zone, for display.
	GetPanelEvents(ctx context.Context, ids []string, date, zone string) (models.PanelEventsResult, error)
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Directory participantRepo.ParticipantRepository
	Hours     WorkingHoursProvider
	Busy      BusyIntervalsProvider
	Zones     *timezone.Resolver

	// FetchWorkers bounds the per-request provider fan-out; zero means
	// the default of 8.
	FetchWorkers int
	// FetchTimeout is the per-participant provider call budget; zero
	// means the default of 10s.
	FetchTimeout time.Duration
}

func (s *DefaultSchedulingService) workers() int {
	if s.FetchWorkers > 0 {
		return s.FetchWorkers
	}
	return 8
}

func (s *DefaultSchedulingService) fetchTimeout() time.Duration {
	if s.FetchTimeout > 0 {
		return s.FetchTimeout
	}
	return 10 * time.Second
}
