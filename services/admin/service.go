package admin

import (
	"fmt"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AdminService covers the vetting queue and account listings.
type AdminService interface {
	ListDoctors(status string) ([]models.Doctor, error)
	ListPatients() ([]models.Patient, error)
	SetDoctorStatus(doctorID, status string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
}

// listingProjection excludes credentials from admin listings.
var listingProjection = bson.M{"passwordHash": 0, "tokenHash": 0}

// ListDoctors returns doctors filtered by vetting status. An empty status
// returns the pending queue.
func (s *DefaultAdminService) ListDoctors(status string) ([]models.Doctor, error) {
	if status == "" {
		status = models.DoctorStatusPending
	}
	switch status {
	case models.DoctorStatusPending, models.DoctorStatusApproved, models.DoctorStatusRejected:
	default:
		return nil, fmt.Errorf("unknown doctor status %q", status)
	}

	doctors, err := s.Doctors.ListByStatus(status, listingProjection)
	if err != nil {
		utils.GetLogger().Error("Failed to list doctors", zap.String("status", status), zap.Error(err))
		return nil, fmt.Errorf("failed to list doctors")
	}
	return doctors, nil
}

func (s *DefaultAdminService) ListPatients() ([]models.Patient, error) {
	patients, err := s.Patients.GetAllWithProjection(listingProjection)
	if err != nil {
		utils.GetLogger().Error("Failed to list patients", zap.Error(err))
		return nil, fmt.Errorf("failed to list patients")
	}
	return patients, nil
}

// SetDoctorStatus moves a doctor through the vetting queue. Only approved
// doctors are bookable.
func (s *DefaultAdminService) SetDoctorStatus(doctorID, status string) error {
	switch status {
	case models.DoctorStatusApproved, models.DoctorStatusRejected, models.DoctorStatusPending:
	default:
		return fmt.Errorf("unknown doctor status %q", status)
	}

	existing, err := s.Doctors.GetByIDWithProjection(doctorID, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Failed to fetch doctor for vetting", zap.String("doctorID", doctorID), zap.Error(err))
		return fmt.Errorf("failed to update doctor status")
	}
	if existing == nil {
		return fmt.Errorf("doctor not found")
	}

	doc := bson.M{"status": status, "updatedAt": time.Now()}
	if err := s.Doctors.UpdateSetDocument(doctorID, doc); err != nil {
		utils.GetLogger().Error("Failed to update doctor status", zap.String("doctorID", doctorID), zap.Error(err))
		return fmt.Errorf("failed to update doctor status")
	}
	return nil
}
