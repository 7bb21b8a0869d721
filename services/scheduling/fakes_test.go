package scheduling

import (
	"context"
	"fmt"
	"time"

	"panelwise/models"
	"panelwise/services/timezone"
)

// Deterministic fakes for the external collaborators.

type fakeDirectory struct {
	participants map[string]models.Participant
	err          error
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (*models.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.participants[id]
	if !ok {
		return nil, fmt.Errorf("no participant %s", id)
	}
	return &p, nil
}

func (f *fakeDirectory) Lookup(ctx context.Context, ids []string) ([]models.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Participant, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.participants[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeHours struct {
	byID map[string]models.WorkingHours
}

func (f *fakeHours) FetchWorkingHours(ctx context.Context, p models.Participant) models.WorkingHours {
	if wh, ok := f.byID[p.ID]; ok {
		return wh
	}
	return models.DefaultWorkingHours()
}

type fakeBusy struct {
	byID map[string][]models.BusyInterval
	err  error
}

func (f *fakeBusy) FetchBusyIntervals(ctx context.Context, p models.Participant, fromUTC, toUTC time.Time) ([]models.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[p.ID], nil
}

func weekdaysMonFri() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

// nineToFive builds Mon-Fri 09:00-17:00 working hours in zone.
func nineToFive(zone string) models.WorkingHours {
	return models.WorkingHours{Days: weekdaysMonFri(), Start: 9 * 60, End: 17 * 60, Zone: zone}
}

func newTestService(dir *fakeDirectory, hours *fakeHours, busy *fakeBusy) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Directory: dir,
		Hours:     hours,
		Busy:      busy,
		Zones:     timezone.NewResolver(),
	}
}

// twoPanelistsUTC is the common fixture: two participants, both Mon-Fri
// 09:00-17:00 UTC.
func twoPanelistsUTC() (*fakeDirectory, *fakeHours) {
	dir := &fakeDirectory{participants: map[string]models.Participant{
		"p1": {ID: "p1", Name: "Asha", Email: "asha@example.com"},
		"p2": {ID: "p2", Name: "Ben", Email: "ben@example.com"},
	}}
	hours := &fakeHours{byID: map[string]models.WorkingHours{
		"p1": nineToFive("UTC"),
		"p2": nineToFive("UTC"),
	}}
	return dir, hours
}

func mustUTC(t string) time.Time {
	ts, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return ts.UTC()
}
