package booking

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// GetAppointment retrieves a single appointment by ID.
func (s *DefaultBookingService) GetAppointment(id string) (*models.Appointment, error) {
	appointment, err := s.AppointmentRepo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetAppointment: repo error", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointment")
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment not found")
	}
	return appointment, nil
}

// ListPatientAppointments returns a patient's appointments, newest first.
func (s *DefaultBookingService) ListPatientAppointments(patientID string) ([]models.Appointment, error) {
	appointments, err := s.AppointmentRepo.ListByPatient(patientID)
	if err != nil {
		utils.GetLogger().Error("ListPatientAppointments: repo error", zap.String("patientID", patientID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments")
	}
	return appointments, nil
}

// ListDoctorAppointments returns a doctor's appointments, optionally for one date.
func (s *DefaultBookingService) ListDoctorAppointments(doctorID, date string) ([]models.Appointment, error) {
	appointments, err := s.AppointmentRepo.ListByDoctor(doctorID, date)
	if err != nil {
		utils.GetLogger().Error("ListDoctorAppointments: repo error", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments")
	}
	return appointments, nil
}

// Cancel marks an appointment cancelled. Only the booked patient or the booked
// doctor may cancel.
func (s *DefaultBookingService) Cancel(ctx context.Context, requesterID, appointmentID string) error {
	appointment, err := s.AppointmentRepo.GetByID(appointmentID)
	if err != nil {
		utils.GetLogger().Error("Cancel: repo error", zap.String("id", appointmentID), zap.Error(err))
		return fmt.Errorf("failed to cancel appointment")
	}
	if appointment == nil {
		return fmt.Errorf("appointment not found")
	}
	if appointment.PatientID != requesterID && appointment.DoctorID != requesterID {
		return fmt.Errorf("not authorized to cancel this appointment")
	}
	if appointment.Status == models.AppointmentCancelled {
		return fmt.Errorf("appointment is already cancelled")
	}

	if err := s.AppointmentRepo.UpdateStatus(appointmentID, models.AppointmentCancelled); err != nil {
		utils.GetLogger().Error("Cancel: status update failed", zap.String("id", appointmentID), zap.Error(err))
		return fmt.Errorf("failed to cancel appointment")
	}
	return nil
}
