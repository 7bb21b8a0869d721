package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts shared by every component that touches external timestamps.
// All date handling in the scheduling core goes through these helpers so
// that parsing and rendering stay consistent across the engine, the
// conflict checker and the panel view.
const (
	ISODateLayout    = "2006-01-02"
	ClockLayout      = "15:04"
	Clock12hLayout   = "03:04 PM"
	LocalStampLayout = "2006-01-02T15:04"
)

// ParseDateInZone parses a YYYY-MM-DD date anchored at midnight in loc.
func ParseDateInZone(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}

// ParseClockMinutes parses a time-of-day string into minutes from
// midnight. Accepts 24-hour "15:04" and 12-hour "3:04 PM" forms.
func ParseClockMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "3:04 PM", "3:04PM", "03:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// ParseStampInZone parses a wall-clock timestamp expressed in loc.
// Accepts "2006-01-02T15:04" and RFC3339 (in which case the instant is
// converted into loc).
func ParseStampInZone(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(LocalStampLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatClock12h renders an instant as a 12-hour clock label, e.g.
// "09:00 AM".
func FormatClock12h(t time.Time) string {
	return t.Format(Clock12hLayout)
}

// FormatISODate renders an instant's calendar date as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// MinutesOnDate anchors minutes-from-midnight onto a calendar date in
// loc. day must be a midnight-anchored date in some location; only its
// Y/M/D fields are used.
func MinutesOnDate(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// WeekdayFromName maps a lowercase English weekday name ("monday") to a
// time.Weekday. The second return is false for unknown names.
func WeekdayFromName(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue", "tues":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu", "thurs":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return time.Sunday, false
}
