package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Submit validates the booking form locally, then runs the submission pipeline:
// an ordered list of steps where best-effort failures become warnings and any
// required failure aborts. No step runs until every local precondition holds.
func (s *DefaultBookingService) Submit(ctx context.Context, patientID string, form models.BookingForm) (*SubmitResult, error) {
	logger := utils.GetLogger()

	doctor, err := s.DoctorRepo.GetByIDWithProjection(form.DoctorID, nil)
	if err != nil {
		logger.Error("Submit: failed to fetch doctor", zap.String("doctorID", form.DoctorID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor not found")
	}
	if doctor.Status != models.DoctorStatusApproved {
		return nil, fmt.Errorf("this doctor is not accepting appointments")
	}

	fee := doctor.FeeFor(form.ConsultationType)
	if err := validateForm(form, doctor, fee); err != nil {
		return nil, err
	}

	// Server-side double-booking check. Distinct from local validation: the
	// form itself is fine, the slot was taken in the meantime.
	taken, err := s.AppointmentRepo.HasConflict(doctor.ID, form.StartAt)
	if err != nil {
		logger.Error("Submit: conflict check failed", zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if taken {
		return nil, ErrSlotTaken
	}

	now := time.Now()
	appointment := &models.Appointment{
		ID:               uuid.New().String(),
		DoctorID:         doctor.ID,
		PatientID:        patientID,
		Date:             form.StartAt.Format("2006-01-02"),
		Start:            form.StartAt.Hour()*60 + form.StartAt.Minute(),
		StartAt:          form.StartAt,
		ConsultationType: form.ConsultationType,
		Reason:           form.Reason,
		Fee:              fee,
		Currency:         doctor.Currency,
		Status:           models.AppointmentConfirmed,
		CreatedAt:        now,
	}

	steps := []Step{
		{
			Name:   "share health profile",
			Policy: StepBestEffort,
			Run: func(ctx context.Context) error {
				if !form.ShareHealthProfile {
					return nil
				}
				return s.attachHealthProfile(patientID, appointment)
			},
		},
		{
			Name:   "process payment",
			Policy: StepRequired,
			Run: func(ctx context.Context) error {
				invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
					PatientID: patientID,
					Amount:    fee,
					Currency:  doctor.Currency,
					Method:    form.PaymentMethod,
				})
				if err != nil {
					return err
				}
				appointment.Invoice = invoice
				return nil
			},
		},
		{
			Name:   "create appointment",
			Policy: StepRequired,
			Run: func(ctx context.Context) error {
				return s.AppointmentRepo.Create(appointment)
			},
		},
		{
			Name:   "schedule reminder",
			Policy: StepBestEffort,
			Run: func(ctx context.Context) error {
				if s.Reminders == nil {
					return nil
				}
				return s.Reminders.ScheduleReminder(appointment)
			},
		},
	}

	warnings, err := RunSteps(ctx, logger, steps)
	if err != nil {
		logger.Error("Submit: pipeline aborted", zap.String("appointmentID", appointment.ID), zap.Error(err))
		return nil, err
	}

	logger.Sugar().Infof("Submit: appointment %s confirmed for patient %s with doctor %s at %s",
		appointment.ID, patientID, doctor.ID, appointment.StartAt.Format(time.RFC3339))
	return &SubmitResult{Appointment: appointment, Warnings: warnings}, nil
}

// validateForm enforces the local preconditions. Every failure is a
// ValidationError so handlers can surface it inline next to the field.
func validateForm(form models.BookingForm, doctor *models.Doctor, fee float64) error {
	if strings.TrimSpace(form.Reason) == "" {
		return NewValidationError("reason", "a reason for the visit is required")
	}
	if form.Gender == "" {
		return NewValidationError("gender", "a gender selection is required")
	}
	if !form.ConsentTreatment || !form.ConsentDataSharing {
		return NewValidationError("consent", "treatment and data-sharing consent must be affirmed")
	}

	cfg := &doctor.Availability
	switch form.ConsultationType {
	case models.ConsultationOnline:
		if !cfg.OnlineConsultations {
			return NewValidationError("consultationType", "this doctor does not offer online consultations")
		}
	case models.ConsultationInPerson:
		if !cfg.InPersonConsultations {
			return NewValidationError("consultationType", "this doctor does not offer in-person consultations")
		}
	case models.ConsultationHomeVisit:
		if !cfg.HomeVisits {
			return NewValidationError("consultationType", "this doctor does not offer home visits")
		}
	default:
		return NewValidationError("consultationType", "unknown consultation type")
	}

	if fee <= 0 {
		return NewValidationError("fee", "the consultation fee is not configured for this type")
	}

	if v := ValidateSlot(form.StartAt, cfg, time.Now()); !v.Valid {
		return NewValidationError("startAt", v.Reason)
	}
	return nil
}

// attachHealthProfile copies the patient's current health profile snapshot
// onto the appointment.
func (s *DefaultBookingService) attachHealthProfile(patientID string, appointment *models.Appointment) error {
	patient, err := s.PatientRepo.GetByIDWithProjection(patientID, bson.M{"healthProfile": 1})
	if err != nil {
		return fmt.Errorf("failed to fetch health profile: %w", err)
	}
	if patient == nil || patient.HealthProfile == nil {
		return fmt.Errorf("no health profile on file")
	}
	appointment.SharedProfile = patient.HealthProfile
	return nil
}
