package models

import "time"

// WorkingHours is a participant's schedulable window, normalized from the
// raw profile values. Start and End are minutes from local midnight.
type WorkingHours struct {
	Days      []time.Weekday `json:"days"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Zone      string         `json:"zone"`
	Defaulted bool           `json:"defaulted,omitempty"`
	// ZoneDegraded is set when the profile's timezone could not be
	// recognized and UTC was substituted.
	ZoneDegraded bool `json:"zoneDegraded,omitempty"`
}

// WorksOn reports whether d is one of the participant's working days.
func (w WorkingHours) WorksOn(d time.Weekday) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}

// DefaultWorkingHours is the fallback applied when a participant's profile
// is incomplete or the provider fails: Mon-Fri, 09:00-17:00, UTC.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Days:      []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Start:     9 * 60,
		End:       17 * 60,
		Zone:      "UTC",
		Defaulted: true,
	}
}

// BusyInterval is a UTC time range during which a participant is
// unavailable according to an external calendar. Start < End always.
type BusyInterval struct {
	ParticipantID string    `json:"participantId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Label         string    `json:"label,omitempty"`
}

// Overlaps applies the half-open overlap test against [start, end).
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// Slot is a candidate meeting interval of the requested duration,
// expressed in the request's reference timezone.
type Slot struct {
	Date       string    `json:"date"` // YYYY-MM-DD in the reference zone
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartLabel string    `json:"startLabel"` // e.g. "09:00 AM"
	EndLabel   string    `json:"endLabel"`
}

// AvailabilityRequest asks for bookable slots across a panel on one date.
type AvailabilityRequest struct {
	ParticipantIDs  []string `json:"participantIds" binding:"required"`
	Date            string   `json:"date" binding:"required"` // YYYY-MM-DD
	DurationMinutes int      `json:"durationMinutes" binding:"required"`
	Timezone        string   `json:"timezone" binding:"required"` // reference zone, must be canonical
}

// AvailabilityResult carries the surviving slots plus an informational
// note (degraded timezones, defaulted working hours, non-working day).
type AvailabilityResult struct {
	Slots []Slot `json:"slots"`
	Note  string `json:"note,omitempty"`
}

// ConflictCheckRequest validates one ad-hoc proposed interval. Start and
// End are wall-clock timestamps in the reference timezone and must fall
// on Date. Override bypasses working-hours policy but never calendar
// conflicts.
type ConflictCheckRequest struct {
	ParticipantIDs []string `json:"participantIds" binding:"required"`
	Date           string   `json:"date" binding:"required"`
	Start          string   `json:"start" binding:"required"` // "2006-01-02T15:04" or RFC3339
	End            string   `json:"end" binding:"required"`
	Timezone       string   `json:"timezone" binding:"required"`
	Override       bool     `json:"override"`
}

// ParticipantConflicts lists the calendar events of one participant that
// collide with a proposed interval.
type ParticipantConflicts struct {
	ParticipantID string       `json:"participantId"`
	Name          string       `json:"name,omitempty"`
	Events        []PanelEvent `json:"events"`
}

// ConflictCheckResult reports whether a proposed interval is bookable.
// An unavailable outcome is a successful response, not an error.
type ConflictCheckResult struct {
	Available bool                   `json:"available"`
	Reason    string                 `json:"reason,omitempty"`
	Conflicts []ParticipantConflicts `json:"conflicts,omitempty"`
}

// PanelEvent is a display-oriented view of one busy event, converted to
// the reference timezone.
type PanelEvent struct {
	Label      string    `json:"label,omitempty"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartLabel string    `json:"startLabel"`
	EndLabel   string    `json:"endLabel"`
}

// WindowView renders the panel's common working window.
type WindowView struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	StartLabel string    `json:"startLabel"`
	EndLabel   string    `json:"endLabel"`
}

// PanelEventsResult is the per-participant event listing for one date.
type PanelEventsResult struct {
	EventsByParticipant map[string][]PanelEvent `json:"eventsByParticipant"`
	IsCommonWorkingDay  bool                    `json:"isCommonWorkingDay"`
	CommonWindow        *WindowView             `json:"commonWorkingWindow,omitempty"`
}
