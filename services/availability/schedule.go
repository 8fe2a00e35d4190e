package availability

import (
	"fmt"

	"medibook/models"
)

var weekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// ValidateSchedule enforces the schedule invariants before a write is
// accepted: recognized lowercase weekday names, at most one entry per day,
// parseable "HH:MM" times, and strictly start < end (no overnight spans).
func ValidateSchedule(cfg models.AvailabilityConfig) error {
	if cfg.NoticePeriodMinutes < 0 {
		return fmt.Errorf("notice period must not be negative")
	}

	seen := make(map[string]bool, len(cfg.WorkingDays))
	for _, day := range cfg.WorkingDays {
		if !weekdays[day.Day] {
			return fmt.Errorf("unknown weekday %q", day.Day)
		}
		if seen[day.Day] {
			return fmt.Errorf("duplicate weekday %q", day.Day)
		}
		seen[day.Day] = true

		for _, slot := range day.Slots {
			start, err := models.ParseClock(slot.StartTime)
			if err != nil {
				return fmt.Errorf("%s: %w", day.Day, err)
			}
			end, err := models.ParseClock(slot.EndTime)
			if err != nil {
				return fmt.Errorf("%s: %w", day.Day, err)
			}
			if start >= end {
				return fmt.Errorf("%s: slot %s-%s must start before it ends", day.Day, slot.StartTime, slot.EndTime)
			}
		}
	}
	return nil
}
