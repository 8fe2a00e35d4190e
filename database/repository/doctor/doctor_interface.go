package doctorRepo

import (
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorRepository defines persistence operations for doctor accounts and
// their availability schedules.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	Update(doctor *models.Doctor) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Doctor, error)
	ListByStatus(status string, projection bson.M) ([]models.Doctor, error)
	ListApproved(projection bson.M) ([]models.Doctor, error)

	// Availability schedule (the doctor-only write path).
	GetAvailability(doctorID string) (*models.AvailabilityConfig, error)
	SetAvailability(doctorID string, cfg models.AvailabilityConfig) error
}
