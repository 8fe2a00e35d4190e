package notification

import (
	"context"
	"fmt"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotificationService delivers appointment notifications to accounts.
type NotificationService interface {
	SendPatientNotification(ctx context.Context, patientID, title, body string, data map[string]string) error
	SendDoctorNotification(ctx context.Context, doctorID, title, body string, data map[string]string) error
}

// DefaultNotificationService resolves the recipient's email and hands the
// message to the mail sender. Push delivery is not wired; email is the only
// channel.
type DefaultNotificationService struct {
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
}

func NewDefaultNotificationService(patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) (*DefaultNotificationService, error) {
	if patients == nil || doctors == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Patients: patients, Doctors: doctors}, nil
}

func (s *DefaultNotificationService) SendPatientNotification(ctx context.Context, patientID, title, body string, data map[string]string) error {
	p, err := s.Patients.GetByIDWithProjection(patientID, bson.M{"id": 1, "email": 1, "fullName": 1})
	if err != nil {
		return fmt.Errorf("failed to resolve patient %s: %w", patientID, err)
	}
	if p == nil {
		return fmt.Errorf("patient %s not found", patientID)
	}
	return s.deliver(p.Email, title, body, data)
}

func (s *DefaultNotificationService) SendDoctorNotification(ctx context.Context, doctorID, title, body string, data map[string]string) error {
	d, err := s.Doctors.GetByIDWithProjection(doctorID, bson.M{"id": 1, "email": 1, "fullName": 1})
	if err != nil {
		return fmt.Errorf("failed to resolve doctor %s: %w", doctorID, err)
	}
	if d == nil {
		return fmt.Errorf("doctor %s not found", doctorID)
	}
	return s.deliver(d.Email, title, body, data)
}

func (s *DefaultNotificationService) deliver(email, title, body string, data map[string]string) error {
	// TODO: swap the logged delivery for a real SMTP sender once the mail
	// provider account is provisioned.
	utils.GetLogger().Info("Delivering notification",
		zap.String("email", email),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
