package booking

import (
	"strings"
	"time"

	"medibook/models"
)

// SlotValidation is the typed result of validating a candidate appointment time.
type SlotValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func invalidSlot(reason string) SlotValidation {
	return SlotValidation{Valid: false, Reason: reason}
}

// ValidateSlot checks a candidate appointment instant against a doctor's
// availability config. It is a pure function of its inputs; now is passed in
// so callers control the reference instant.
//
// A nil config fails closed. Slot membership uses half-open intervals
// (start <= t < end), so a candidate exactly at a slot's end time is rejected.
func ValidateSlot(candidate time.Time, cfg *models.AvailabilityConfig, now time.Time) SlotValidation {
	if cfg == nil {
		return invalidSlot("availability not found")
	}

	if !candidate.After(now) {
		return invalidSlot("cannot book a past date/time")
	}

	if cfg.NoticePeriodMinutes > 0 {
		minAllowed := now.Add(time.Duration(cfg.NoticePeriodMinutes) * time.Minute)
		if candidate.Before(minAllowed) {
			return invalidSlot("notice period not met, earliest available time " + minAllowed.Format("15:04"))
		}
	}

	weekday := strings.ToLower(candidate.Weekday().String())
	day := cfg.DayByName(weekday)
	if day == nil || len(day.Slots) == 0 {
		return invalidSlot("the doctor is not available on this day")
	}

	minutes := candidate.Hour()*60 + candidate.Minute()
	for _, slot := range day.Slots {
		if !slot.IsAvailable {
			continue
		}
		start, err := models.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := models.ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if start <= minutes && minutes < end {
			return SlotValidation{Valid: true}
		}
	}

	return invalidSlot("the doctor is not available at this time")
}
