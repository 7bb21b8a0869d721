// Package calendar adapts the external calendar backend and the
// directory profile data into the providers the scheduling core
// consumes.
package calendar

import (
	"context"
	"time"

	"panelwise/models"
	"panelwise/services/timezone"
	"panelwise/utils"

	"go.uber.org/zap"
)

// ProfileHoursProvider derives a participant's working hours from the
// raw profile values the directory stores. Upstream data is unreliable:
// on missing or unparseable values it hands back the fixed default
// (Mon-Fri 09:00-17:00 UTC) so one incomplete profile never blocks
// scheduling for the whole panel.
type ProfileHoursProvider struct {
	Zones *timezone.Resolver
}

// FetchWorkingHours never fails; the worst case is the flagged default.
func (p *ProfileHoursProvider) FetchWorkingHours(ctx context.Context, participant models.Participant) models.WorkingHours {
	logger := utils.GetLogger()

	if len(participant.WorkingDays) == 0 || participant.WorkingStart == "" || participant.WorkingEnd == "" {
		return models.DefaultWorkingHours()
	}

	days := make([]time.Weekday, 0, len(participant.WorkingDays))
	for _, name := range participant.WorkingDays {
		day, ok := utils.WeekdayFromName(name)
		if !ok {
			logger.Debug("unrecognized working day in profile",
				zap.String("participantID", participant.ID), zap.String("day", name))
			return models.DefaultWorkingHours()
		}
		days = append(days, day)
	}

	start, err := utils.ParseClockMinutes(participant.WorkingStart)
	if err != nil {
		logger.Debug("unparseable working start in profile",
			zap.String("participantID", participant.ID), zap.Error(err))
		return models.DefaultWorkingHours()
	}
	end, err := utils.ParseClockMinutes(participant.WorkingEnd)
	if err != nil {
		logger.Debug("unparseable working end in profile",
			zap.String("participantID", participant.ID), zap.Error(err))
		return models.DefaultWorkingHours()
	}
	if start >= end {
		return models.DefaultWorkingHours()
	}

	res := p.Zones.Normalize(participant.Timezone)
	return models.WorkingHours{
		Days:         days,
		Start:        start,
		End:          end,
		Zone:         res.Zone,
		ZoneDegraded: res.Degraded,
	}
}
