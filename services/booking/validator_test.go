package booking

import (
	"strings"
	"testing"
	"time"

	"medibook/models"
)

// mondaySchedule mirrors a typical clinic week: morning and afternoon windows
// with a lunch gap.
func mondaySchedule(notice int) *models.AvailabilityConfig {
	return &models.AvailabilityConfig{
		NoticePeriodMinutes: notice,
		WorkingDays: []models.WorkingDay{
			{
				Day: "monday",
				Slots: []models.TimeSlot{
					{StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
					{StartTime: "13:00", EndTime: "17:00", IsAvailable: true},
				},
			},
		},
	}
}

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestValidateSlot_NilConfigFailsClosed(t *testing.T) {
	v := ValidateSlot(at(monday, 10, 0), nil, at(monday, 8, 0))
	if v.Valid {
		t.Fatal("expected invalid for nil config")
	}
	if v.Reason != "availability not found" {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
}

func TestValidateSlot_PastCandidate(t *testing.T) {
	now := at(monday, 11, 0)
	for _, candidate := range []time.Time{at(monday, 10, 0), now} {
		v := ValidateSlot(candidate, mondaySchedule(0), now)
		if v.Valid {
			t.Fatalf("expected invalid for candidate %s", candidate)
		}
		if !strings.Contains(v.Reason, "past") {
			t.Fatalf("expected past-time reason, got %q", v.Reason)
		}
	}
}

func TestValidateSlot_NoticePeriod(t *testing.T) {
	cfg := mondaySchedule(60)
	now := at(monday, 10, 0)

	v := ValidateSlot(at(monday, 10, 30), cfg, now)
	if v.Valid {
		t.Fatal("expected invalid inside notice period")
	}
	if !strings.Contains(v.Reason, "11:00") {
		t.Fatalf("expected earliest allowed time 11:00 in reason, got %q", v.Reason)
	}

	// Notice period dominates even when the time-of-day falls in an open slot.
	v = ValidateSlot(at(monday, 10, 45), cfg, now)
	if v.Valid {
		t.Fatal("expected invalid: candidate in open slot but inside notice period")
	}

	v = ValidateSlot(at(monday, 11, 15), cfg, now)
	if !v.Valid {
		t.Fatalf("expected valid at 11:15, got reason %q", v.Reason)
	}
}

func TestValidateSlot_SlotMembership(t *testing.T) {
	cfg := mondaySchedule(0)
	now := at(monday, 8, 0)

	tests := []struct {
		name  string
		h, m  int
		valid bool
	}{
		{"inside morning window", 10, 0, true},
		{"start boundary inclusive", 9, 0, true},
		{"lunch gap", 12, 30, false},
		{"afternoon window", 13, 0, true},
		{"end boundary exclusive", 17, 0, false},
		{"just before end", 16, 59, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateSlot(at(monday, tc.h, tc.m), cfg, now)
			if v.Valid != tc.valid {
				t.Fatalf("candidate %02d:%02d: got valid=%v (reason %q), want %v",
					tc.h, tc.m, v.Valid, v.Reason, tc.valid)
			}
		})
	}
}

func TestValidateSlot_DayNotScheduled(t *testing.T) {
	cfg := mondaySchedule(0)
	tuesday := monday.AddDate(0, 0, 1)

	v := ValidateSlot(at(tuesday, 10, 0), cfg, at(monday, 8, 0))
	if v.Valid {
		t.Fatal("expected invalid on unscheduled day")
	}
	if !strings.Contains(v.Reason, "day") {
		t.Fatalf("expected day-related reason, got %q", v.Reason)
	}
}

func TestValidateSlot_UnavailableSlotSkipped(t *testing.T) {
	cfg := &models.AvailabilityConfig{
		WorkingDays: []models.WorkingDay{
			{
				Day: "monday",
				Slots: []models.TimeSlot{
					{StartTime: "09:00", EndTime: "12:00", IsAvailable: false},
				},
			},
		},
	}

	v := ValidateSlot(at(monday, 10, 0), cfg, at(monday, 8, 0))
	if v.Valid {
		t.Fatal("expected invalid: the only slot is marked unavailable")
	}
	if !strings.Contains(v.Reason, "time") {
		t.Fatalf("expected time-related reason, got %q", v.Reason)
	}
}
