package scheduling

import (
	"context"
	"errors"
	"sync"
	"time"

	"panelwise/models"
	"panelwise/utils"

	"go.uber.org/zap"
)

// The provider fan-out: one independent network call per participant,
// bounded by a worker pool, each under its own timeout, followed by a
// barrier. Results are merged only by the caller, so no locks guard the
// per-participant values beyond the result channel itself.

// ctxAbortError classifies a failed request context observed during the
// named stage. A caller hanging up and a deadline expiring are both
// Timeout aborts, but the reason must name what actually happened.
func ctxAbortError(ctx context.Context, stage string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return NewError(KindTimeout, "the request was cancelled while %s", stage)
	}
	return NewError(KindTimeout, "the request deadline expired while %s", stage)
}

type hoursResult struct {
	participantID string
	hours         models.WorkingHours
}

// fetchAllWorkingHours fetches every participant's working hours
// concurrently. Provider failures never surface here: the provider
// contract substitutes the fixed default, so the only error is the
// caller's deadline expiring.
func (s *DefaultSchedulingService) fetchAllWorkingHours(ctx context.Context, participants []models.Participant) (map[string]models.WorkingHours, error) {
	resultsCh := make(chan hoursResult, len(participants))
	sem := make(chan struct{}, s.workers())
	var wg sync.WaitGroup

	for _, p := range participants {
		wg.Add(1)
		go func(p models.Participant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout())
			defer cancel()
			resultsCh <- hoursResult{participantID: p.ID, hours: s.Hours.FetchWorkingHours(fetchCtx, p)}
		}(p)
	}
	wg.Wait()
	close(resultsCh)

	if ctx.Err() != nil {
		return nil, ctxAbortError(ctx, "fetching working hours")
	}

	hoursByID := make(map[string]models.WorkingHours, len(participants))
	for res := range resultsCh {
		hoursByID[res.participantID] = res.hours
	}
	return hoursByID, nil
}

type busyResult struct {
	participantID string
	name          string
	intervals     []models.BusyInterval
	err           error
}

// fetchAllBusyIntervals fetches every participant's busy ranges for
// [fromUTC, toUTC) concurrently. A failed fetch aborts the whole request
// as a provider error: a conflict must never be silently missed because
// one calendar could not be read.
func (s *DefaultSchedulingService) fetchAllBusyIntervals(ctx context.Context, participants []models.Participant, fromUTC, toUTC time.Time) (map[string][]models.BusyInterval, error) {
	logger := utils.GetLogger()
	resultsCh := make(chan busyResult, len(participants))
	sem := make(chan struct{}, s.workers())
	var wg sync.WaitGroup

	for _, p := range participants {
		wg.Add(1)
		go func(p models.Participant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout())
			defer cancel()
			intervals, err := s.Busy.FetchBusyIntervals(fetchCtx, p, fromUTC, toUTC)
			resultsCh <- busyResult{participantID: p.ID, name: p.Name, intervals: intervals, err: err}
		}(p)
	}
	wg.Wait()
	close(resultsCh)

	if ctx.Err() != nil {
		return nil, ctxAbortError(ctx, "fetching calendar events")
	}

	busyByID := make(map[string][]models.BusyInterval, len(participants))
	for res := range resultsCh {
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return nil, NewError(KindTimeout, "the calendar for %s did not respond in time", res.name)
			}
			logger.Warn("busy interval fetch failed",
				zap.String("participantID", res.participantID), zap.Error(res.err))
			return nil, NewError(KindProviderError, "could not read the calendar for %s", res.name)
		}
		busyByID[res.participantID] = res.intervals
	}
	return busyByID, nil
}
