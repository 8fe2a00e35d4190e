package booking

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
)

// SubmitResult carries the created appointment plus any non-fatal warnings
// collected from best-effort steps.
type SubmitResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// BookingService orchestrates appointment submission and lifecycle operations.
type BookingService interface {
	Submit(ctx context.Context, patientID string, form models.BookingForm) (*SubmitResult, error)
	GetAppointment(id string) (*models.Appointment, error)
	ListPatientAppointments(patientID string) ([]models.Appointment, error)
	ListDoctorAppointments(doctorID, date string) ([]models.Appointment, error)
	Cancel(ctx context.Context, requesterID, appointmentID string) error
}

// ReminderScheduler enqueues an appointment reminder for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(appointment *models.Appointment) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	DoctorRepo      doctorRepo.DoctorRepository
	PatientRepo     patientRepo.PatientRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Payments        PaymentProcessor
	Reminders       ReminderScheduler
}
