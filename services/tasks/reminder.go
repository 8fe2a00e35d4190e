package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLeadTime is how long before the appointment the reminder fires.
const reminderLeadTime = time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues appointment reminders on the Redis-backed
// task queue. It satisfies the booking service's ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleReminder enqueues one reminder for the patient and one for the
// doctor, each firing an hour before the appointment starts. Appointments
// closer than the lead time get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(appt *models.Appointment) error {
	if s.Client == nil {
		return fmt.Errorf("reminder scheduler has no queue client")
	}

	fireAt := appt.StartAt.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		return nil
	}

	when := appt.StartAt.Format("15:04 on Jan 2")
	targets := []models.ReminderPayload{
		{
			ReminderID:    uuid.New().String(),
			AppointmentID: appt.ID,
			Target:        "patient",
			ID:            appt.PatientID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("Your appointment is at %s.", when),
			FireDate:      fireAt.Format(time.RFC3339),
		},
		{
			ReminderID:    uuid.New().String(),
			AppointmentID: appt.ID,
			Target:        "doctor",
			ID:            appt.DoctorID,
			Title:         "Upcoming appointment",
			Body:          fmt.Sprintf("You have an appointment at %s.", when),
			FireDate:      fireAt.Format(time.RFC3339),
		},
	}

	for _, payload := range targets {
		task, opts, err := NewReminderTask(payload, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			utils.GetLogger().Error("Failed to enqueue reminder task",
				zap.Error(err), zap.String("appointmentID", appt.ID), zap.String("target", payload.Target))
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
	}
	return nil
}
