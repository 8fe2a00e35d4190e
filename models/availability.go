package models

import (
	"fmt"
	"time"
)

// TimeSlot is a doctor-defined recurring availability window within a single day.
// Times are wall-clock "HH:MM" strings; overnight spans are not supported.
type TimeSlot struct {
	StartTime   string `bson:"startTime" json:"startTime"`
	EndTime     string `bson:"endTime" json:"endTime"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// WorkingDay groups the slots for one weekday. Day names are lowercase English
// ("monday".."sunday") and unique within a schedule.
type WorkingDay struct {
	Day   string     `bson:"day" json:"day"`
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// AvailabilityConfig is a doctor's bookable schedule. It is read-only for
// patients; only the doctor's own schedule-editing path mutates it.
type AvailabilityConfig struct {
	WorkingDays           []WorkingDay `bson:"workingDays" json:"workingDays"`
	NoticePeriodMinutes   int          `bson:"noticePeriodMinutes" json:"noticePeriodMinutes"`
	HomeVisits            bool         `bson:"homeVisits" json:"homeVisits"`
	OnlineConsultations   bool         `bson:"onlineConsultations" json:"onlineConsultations"`
	InPersonConsultations bool         `bson:"inPersonConsultations" json:"inPersonConsultations"`
	UpdatedAt             time.Time    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DayByName returns the working day matching the given lowercase weekday name,
// or nil when the doctor has no schedule for that day.
func (c *AvailabilityConfig) DayByName(day string) *WorkingDay {
	for i := range c.WorkingDays {
		if c.WorkingDays[i].Day == day {
			return &c.WorkingDays[i]
		}
	}
	return nil
}

// ParseClock converts an "HH:MM" wall-clock string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to an "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
