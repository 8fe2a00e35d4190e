package availability

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
)

func slot(start, end string) models.TimeSlot {
	return models.TimeSlot{StartTime: start, EndTime: end, IsAvailable: true}
}

func TestValidateSchedule_Valid(t *testing.T) {
	cfg := models.AvailabilityConfig{
		NoticePeriodMinutes: 60,
		WorkingDays: []models.WorkingDay{
			{Day: "monday", Slots: []models.TimeSlot{slot("09:00", "12:00"), slot("13:00", "17:00")}},
			{Day: "friday", Slots: []models.TimeSlot{slot("08:30", "14:00")}},
		},
	}
	assert.NoError(t, ValidateSchedule(cfg))
}

func TestValidateSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.AvailabilityConfig
		want string
	}{
		{
			name: "duplicate day",
			cfg: models.AvailabilityConfig{WorkingDays: []models.WorkingDay{
				{Day: "monday", Slots: []models.TimeSlot{slot("09:00", "12:00")}},
				{Day: "monday", Slots: []models.TimeSlot{slot("13:00", "17:00")}},
			}},
			want: "duplicate weekday",
		},
		{
			name: "unknown day name",
			cfg: models.AvailabilityConfig{WorkingDays: []models.WorkingDay{
				{Day: "Monday", Slots: []models.TimeSlot{slot("09:00", "12:00")}},
			}},
			want: "unknown weekday",
		},
		{
			name: "start after end",
			cfg: models.AvailabilityConfig{WorkingDays: []models.WorkingDay{
				{Day: "tuesday", Slots: []models.TimeSlot{slot("17:00", "09:00")}},
			}},
			want: "must start before it ends",
		},
		{
			name: "zero-length slot",
			cfg: models.AvailabilityConfig{WorkingDays: []models.WorkingDay{
				{Day: "tuesday", Slots: []models.TimeSlot{slot("09:00", "09:00")}},
			}},
			want: "must start before it ends",
		},
		{
			name: "malformed clock time",
			cfg: models.AvailabilityConfig{WorkingDays: []models.WorkingDay{
				{Day: "wednesday", Slots: []models.TimeSlot{slot("9am", "12:00")}},
			}},
			want: "invalid clock time",
		},
		{
			name: "negative notice period",
			cfg:  models.AvailabilityConfig{NoticePeriodMinutes: -5},
			want: "notice period",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSchedule(tc.cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
