package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelwise/models"
)

// 2025-06-17 is a Tuesday, 2025-06-18 a Wednesday, 2025-06-21 a Saturday.
const (
	tuesday   = "2025-06-17"
	wednesday = "2025-06-18"
	saturday  = "2025-06-21"
)

func TestComputeAvailableSlotsCommonDay(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	require.Len(t, res.Slots, 8)

	assert.Equal(t, "09:00 AM", res.Slots[0].StartLabel)
	assert.Equal(t, "10:00 AM", res.Slots[0].EndLabel)
	assert.Equal(t, "04:00 PM", res.Slots[7].StartLabel)
	assert.Equal(t, "05:00 PM", res.Slots[7].EndLabel)

	for i, slot := range res.Slots {
		assert.Equal(t, tuesday, slot.Date)
		assert.Equal(t, time.Hour, slot.End.Sub(slot.Start), "slot %d duration", i)
		if i > 0 {
			assert.True(t, slot.Start.After(res.Slots[i-1].Start), "slots must strictly increase")
			assert.False(t, slot.Start.Before(res.Slots[i-1].End), "slots must not overlap")
		}
	}
}

func TestComputeAvailableSlotsExcludesBusySlot(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	busy := &fakeBusy{byID: map[string][]models.BusyInterval{
		"p2": {{
			ParticipantID: "p2",
			Start:         mustUTC("2025-06-17T10:00:00Z"),
			End:           mustUTC("2025-06-17T11:00:00Z"),
			Label:         "Design review",
		}},
	}}
	svc := newTestService(dir, hours, busy)

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	require.Len(t, res.Slots, 7)

	for _, slot := range res.Slots {
		assert.NotEqual(t, "10:00 AM", slot.StartLabel)
		for _, intervals := range busy.byID {
			for _, b := range intervals {
				assert.False(t, b.Overlaps(slot.Start, slot.End),
					"slot %s-%s overlaps busy interval", slot.StartLabel, slot.EndLabel)
			}
		}
	}
}

func TestComputeAvailableSlotsDisjointTimezones(t *testing.T) {
	// New York and Kolkata 09:00-17:00 windows never intersect on the
	// same New York calendar date: Kolkata's working day starts the
	// previous evening in New York.
	dir := &fakeDirectory{participants: map[string]models.Participant{
		"x": {ID: "x", Name: "X"},
		"y": {ID: "y", Name: "Y"},
	}}
	hours := &fakeHours{byID: map[string]models.WorkingHours{
		"x": nineToFive("America/New_York"),
		"y": nineToFive("Asia/Kolkata"),
	}}
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"x", "y"},
		Date:            wednesday,
		DurationMinutes: 30,
		Timezone:        "America/New_York",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.NotEmpty(t, res.Note)
}

func TestComputeAvailableSlotsDateShiftZeroesAvailability(t *testing.T) {
	// A single Kolkata participant evaluated against a New York
	// reference date: 09:00 IST lands on the previous New York date, so
	// the converted window crosses a date line and contributes nothing.
	dir := &fakeDirectory{participants: map[string]models.Participant{
		"y": {ID: "y", Name: "Y"},
	}}
	hours := &fakeHours{byID: map[string]models.WorkingHours{
		"y": nineToFive("Asia/Kolkata"),
	}}
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"y"},
		Date:            wednesday,
		DurationMinutes: 30,
		Timezone:        "America/New_York",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
}

func TestComputeAvailableSlotsNonWorkingDay(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            saturday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.NoError(t, err, "a non-working day is a valid empty result, not an error")
	assert.Empty(t, res.Slots)
	assert.Contains(t, res.Note, "not a working day")
}

func TestComputeAvailableSlotsDiscardsPartialTrailingSlot(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	// 8 hours / 90 minutes = 5 whole slots; the trailing 30 minutes is
	// discarded.
	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 90,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	require.Len(t, res.Slots, 5)
	assert.Equal(t, "03:00 PM", res.Slots[4].StartLabel)
	assert.Equal(t, "04:30 PM", res.Slots[4].EndLabel)
}

func TestComputeAvailableSlotsValidation(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	cases := []struct {
		name string
		req  models.AvailabilityRequest
		kind Kind
	}{
		{
			name: "no participants",
			req:  models.AvailabilityRequest{Date: tuesday, DurationMinutes: 30, Timezone: "UTC"},
			kind: KindBadRequest,
		},
		{
			name: "invalid timezone",
			req: models.AvailabilityRequest{
				ParticipantIDs: []string{"p1"}, Date: tuesday, DurationMinutes: 30, Timezone: "Eastern Standard Time",
			},
			kind: KindBadRequest,
		},
		{
			name: "invalid date",
			req: models.AvailabilityRequest{
				ParticipantIDs: []string{"p1"}, Date: "17/06/2025", DurationMinutes: 30, Timezone: "UTC",
			},
			kind: KindBadRequest,
		},
		{
			name: "non-positive duration",
			req: models.AvailabilityRequest{
				ParticipantIDs: []string{"p1"}, Date: tuesday, DurationMinutes: 0, Timezone: "UTC",
			},
			kind: KindBadRequest,
		},
		{
			name: "duration beyond one day",
			req: models.AvailabilityRequest{
				ParticipantIDs: []string{"p1"}, Date: tuesday, DurationMinutes: 200_000_000, Timezone: "UTC",
			},
			kind: KindBadRequest,
		},
		{
			name: "unknown participant",
			req: models.AvailabilityRequest{
				ParticipantIDs: []string{"p1", "ghost"}, Date: tuesday, DurationMinutes: 30, Timezone: "UTC",
			},
			kind: KindNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ComputeAvailableSlots(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestComputeAvailableSlotsDedupesParticipants(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p1", " p2 ", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	assert.Len(t, res.Slots, 8)
}

func TestComputeAllSlotsIgnoresWorkingHours(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	// Saturday is not a working day, but full-day mode does not gate on
	// working hours: 24h / 120min = 12 slots.
	res, err := svc.ComputeAllSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            saturday,
		DurationMinutes: 120,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	assert.Len(t, res.Slots, 12)
	assert.Equal(t, "12:00 AM", res.Slots[0].StartLabel)
}

func TestComputeAllSlotsStillFiltersBusy(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	busy := &fakeBusy{byID: map[string][]models.BusyInterval{
		"p1": {{
			ParticipantID: "p1",
			Start:         mustUTC("2025-06-21T00:00:00Z"),
			End:           mustUTC("2025-06-21T02:00:00Z"),
			Label:         "On call",
		}},
	}}
	svc := newTestService(dir, hours, busy)

	res, err := svc.ComputeAllSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            saturday,
		DurationMinutes: 120,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	assert.Len(t, res.Slots, 11)
}

func TestComputeAllSlotsRejectsOversizedDuration(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	_, err := svc.ComputeAllSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1"},
		Date:            tuesday,
		DurationMinutes: 200_000_000,
		Timezone:        "UTC",
	})
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestBusyProviderFailureAbortsRequest(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{err: assert.AnError})

	_, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.Error(t, err)
	assert.Equal(t, KindProviderError, KindOf(err))
}

func TestExpiredDeadlineSurfacesTimeout(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := svc.ComputeAvailableSlots(ctx, models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestCancelledRequestReportsCancellation(t *testing.T) {
	dir, hours := twoPanelistsUTC()
	svc := newTestService(dir, hours, &fakeBusy{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ComputeAvailableSlots(ctx, models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1", "p2"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Contains(t, err.Error(), "cancelled")
}

func TestProfileNoteMentionsDegradedData(t *testing.T) {
	dir := &fakeDirectory{participants: map[string]models.Participant{
		"p1": {ID: "p1", Name: "Asha"},
	}}
	defaulted := models.DefaultWorkingHours()
	hours := &fakeHours{byID: map[string]models.WorkingHours{"p1": defaulted}}
	svc := newTestService(dir, hours, &fakeBusy{})

	res, err := svc.ComputeAvailableSlots(context.Background(), models.AvailabilityRequest{
		ParticipantIDs:  []string{"p1"},
		Date:            tuesday,
		DurationMinutes: 60,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	assert.Contains(t, res.Note, "Asha")
}
