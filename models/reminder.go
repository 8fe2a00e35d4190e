package models

// ReminderPayload is the queued payload for an appointment reminder.
type ReminderPayload struct {
	ReminderID    string `json:"reminderId"`
	AppointmentID string `json:"appointmentId"`
	Target        string `json:"target"` // "patient" or "doctor"
	ID            string `json:"id"`     // account ID of the target
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
