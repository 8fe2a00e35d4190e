package appointmentRepo

import (
	"time"

	"medibook/models"
)

// AppointmentRepository defines persistence operations for appointment records.
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	ListByPatient(patientID string) ([]models.Appointment, error)
	ListByDoctor(doctorID string, date string) ([]models.Appointment, error)
	UpdateStatus(id, status string) error
	HasConflict(doctorID string, startAt time.Time) (bool, error)
}
