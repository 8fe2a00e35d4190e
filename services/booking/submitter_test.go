package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockDoctorRepo is a mock implementation of DoctorRepository.
type MockDoctorRepo struct {
	mock.Mock
}

func (m *MockDoctorRepo) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepo) Update(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockDoctorRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	args := m.Called(id, projection)
	if d := args.Get(0); d != nil {
		return d.(*models.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Doctor, error) {
	args := m.Called(email, projection)
	if d := args.Get(0); d != nil {
		return d.(*models.Doctor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) ListByStatus(status string, projection bson.M) ([]models.Doctor, error) {
	args := m.Called(status, projection)
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepo) ListApproved(projection bson.M) ([]models.Doctor, error) {
	args := m.Called(projection)
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorRepo) GetAvailability(doctorID string) (*models.AvailabilityConfig, error) {
	args := m.Called(doctorID)
	if c := args.Get(0); c != nil {
		return c.(*models.AvailabilityConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) SetAvailability(doctorID string, cfg models.AvailabilityConfig) error {
	args := m.Called(doctorID, cfg)
	return args.Error(0)
}

// MockPatientRepo is a mock implementation of PatientRepository.
type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) Create(patient *models.Patient) error {
	args := m.Called(patient)
	return args.Error(0)
}

func (m *MockPatientRepo) Update(patient *models.Patient) error {
	args := m.Called(patient)
	return args.Error(0)
}

func (m *MockPatientRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockPatientRepo) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPatientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error) {
	args := m.Called(id, projection)
	if p := args.Get(0); p != nil {
		return p.(*models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Patient, error) {
	args := m.Called(email, projection)
	if p := args.Get(0); p != nil {
		return p.(*models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepo) GetAllWithProjection(projection bson.M) ([]models.Patient, error) {
	args := m.Called(projection)
	return args.Get(0).([]models.Patient), args.Error(1)
}

// MockAppointmentRepo is a mock implementation of AppointmentRepository.
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	args := m.Called(id)
	if a := args.Get(0); a != nil {
		return a.(*models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	args := m.Called(patientID)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) ListByDoctor(doctorID string, date string) ([]models.Appointment, error) {
	args := m.Called(doctorID, date)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) UpdateStatus(id, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepo) HasConflict(doctorID string, startAt time.Time) (bool, error) {
	args := m.Called(doctorID, startAt)
	return args.Bool(0), args.Error(1)
}

// MockPaymentProcessor is a mock implementation of PaymentProcessor.
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	args := m.Called(ctx, req)
	if inv := args.Get(0); inv != nil {
		return inv.(*models.Invoice), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReminderScheduler is a mock implementation of ReminderScheduler.
type MockReminderScheduler struct {
	mock.Mock
}

func (m *MockReminderScheduler) ScheduleReminder(appointment *models.Appointment) error {
	args := m.Called(appointment)
	return args.Error(0)
}

// testDoctor returns an approved doctor available around the clock every day,
// so a near-future candidate always lands in an open slot.
func testDoctor() *models.Doctor {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	var workingDays []models.WorkingDay
	for _, d := range days {
		workingDays = append(workingDays, models.WorkingDay{
			Day: d,
			Slots: []models.TimeSlot{
				{StartTime: "00:00", EndTime: "23:59", IsAvailable: true},
			},
		})
	}
	return &models.Doctor{
		ID:       "doc-1",
		FullName: "Dr. Amina Said",
		Status:   models.DoctorStatusApproved,
		Fees:     models.ConsultationFees{Online: 40, InPerson: 60, HomeVisit: 90},
		Currency: "usd",
		Availability: models.AvailabilityConfig{
			WorkingDays:           workingDays,
			OnlineConsultations:   true,
			InPersonConsultations: true,
		},
	}
}

func validForm() models.BookingForm {
	return models.BookingForm{
		DoctorID:           "doc-1",
		StartAt:            time.Now().Add(48 * time.Hour).Truncate(time.Hour),
		ConsultationType:   models.ConsultationOnline,
		Reason:             "persistent headaches",
		Gender:             "female",
		ConsentTreatment:   true,
		ConsentDataSharing: true,
		PaymentMethod:      "cash",
	}
}

// newTestService takes the ReminderScheduler interface rather than the mock
// type so tests passing nil leave the field a true nil interface, matching
// production wiring without a scheduler.
func newTestService(doctors *MockDoctorRepo, patients *MockPatientRepo, appointments *MockAppointmentRepo, payments *MockPaymentProcessor, reminders ReminderScheduler) *DefaultBookingService {
	return &DefaultBookingService{
		DoctorRepo:      doctors,
		PatientRepo:     patients,
		AppointmentRepo: appointments,
		Payments:        payments,
		Reminders:       reminders,
	}
}

func TestSubmit_HappyPath(t *testing.T) {
	doctors := &MockDoctorRepo{}
	patients := &MockPatientRepo{}
	appointments := &MockAppointmentRepo{}
	payments := &MockPaymentProcessor{}
	reminders := &MockReminderScheduler{}
	svc := newTestService(doctors, patients, appointments, payments, reminders)

	form := validForm()
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)
	appointments.On("HasConflict", "doc-1", form.StartAt).Return(false, nil)
	payments.On("ProcessPayment", mock.Anything, mock.Anything).Return(&models.Invoice{InvoiceID: "inv-1", Status: "pending"}, nil)
	appointments.On("Create", mock.Anything).Return(nil)
	reminders.On("ScheduleReminder", mock.Anything).Return(nil)

	result, err := svc.Submit(context.Background(), "pat-1", form)
	assert.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "doc-1", result.Appointment.DoctorID)
	assert.Equal(t, "pat-1", result.Appointment.PatientID)
	assert.Equal(t, float64(40), result.Appointment.Fee)
	assert.Equal(t, models.AppointmentConfirmed, result.Appointment.Status)
	assert.Equal(t, form.StartAt.Format("2006-01-02"), result.Appointment.Date)
	assert.Equal(t, "inv-1", result.Appointment.Invoice.InvoiceID)
	appointments.AssertCalled(t, "Create", mock.Anything)
}

func TestSubmit_MissingConsentIsLocalValidation(t *testing.T) {
	doctors := &MockDoctorRepo{}
	appointments := &MockAppointmentRepo{}
	svc := newTestService(doctors, &MockPatientRepo{}, appointments, &MockPaymentProcessor{}, nil)

	form := validForm()
	form.ConsentDataSharing = false
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)

	_, err := svc.Submit(context.Background(), "pat-1", form)
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))
	// Local failures never reach the appointment store.
	appointments.AssertNotCalled(t, "HasConflict", mock.Anything, mock.Anything)
	appointments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_SlotOutsideScheduleIsLocalValidation(t *testing.T) {
	doctors := &MockDoctorRepo{}
	appointments := &MockAppointmentRepo{}
	svc := newTestService(doctors, &MockPatientRepo{}, appointments, &MockPaymentProcessor{}, nil)

	doctor := testDoctor()
	// Close every window so no candidate time can match.
	for i := range doctor.Availability.WorkingDays {
		for j := range doctor.Availability.WorkingDays[i].Slots {
			doctor.Availability.WorkingDays[i].Slots[j].IsAvailable = false
		}
	}
	form := validForm()
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(doctor, nil)

	_, err := svc.Submit(context.Background(), "pat-1", form)
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))
	appointments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_ConflictIsServerRejection(t *testing.T) {
	doctors := &MockDoctorRepo{}
	appointments := &MockAppointmentRepo{}
	svc := newTestService(doctors, &MockPatientRepo{}, appointments, &MockPaymentProcessor{}, nil)

	form := validForm()
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)
	appointments.On("HasConflict", "doc-1", form.StartAt).Return(true, nil)

	_, err := svc.Submit(context.Background(), "pat-1", form)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.False(t, IsValidationError(err))
	appointments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_ProfileShareFailureIsWarningOnly(t *testing.T) {
	doctors := &MockDoctorRepo{}
	patients := &MockPatientRepo{}
	appointments := &MockAppointmentRepo{}
	payments := &MockPaymentProcessor{}
	svc := newTestService(doctors, patients, appointments, payments, nil)

	form := validForm()
	form.ShareHealthProfile = true
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)
	appointments.On("HasConflict", "doc-1", form.StartAt).Return(false, nil)
	// Patient has no health profile on file.
	patients.On("GetByIDWithProjection", "pat-1", mock.Anything).Return(&models.Patient{ID: "pat-1"}, nil)
	payments.On("ProcessPayment", mock.Anything, mock.Anything).Return(&models.Invoice{InvoiceID: "inv-2", Status: "pending"}, nil)
	appointments.On("Create", mock.Anything).Return(nil)

	result, err := svc.Submit(context.Background(), "pat-1", form)
	assert.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "share health profile")
	assert.Nil(t, result.Appointment.SharedProfile)
	appointments.AssertCalled(t, "Create", mock.Anything)
}

func TestSubmit_ReminderFailureIsWarningOnly(t *testing.T) {
	doctors := &MockDoctorRepo{}
	appointments := &MockAppointmentRepo{}
	payments := &MockPaymentProcessor{}
	reminders := &MockReminderScheduler{}
	svc := newTestService(doctors, &MockPatientRepo{}, appointments, payments, reminders)

	form := validForm()
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)
	appointments.On("HasConflict", "doc-1", form.StartAt).Return(false, nil)
	payments.On("ProcessPayment", mock.Anything, mock.Anything).Return(&models.Invoice{InvoiceID: "inv-3", Status: "pending"}, nil)
	appointments.On("Create", mock.Anything).Return(nil)
	reminders.On("ScheduleReminder", mock.Anything).Return(errors.New("queue unavailable"))

	result, err := svc.Submit(context.Background(), "pat-1", form)
	assert.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "schedule reminder")
	appointments.AssertCalled(t, "Create", mock.Anything)
}

func TestSubmit_PaymentFailureAborts(t *testing.T) {
	doctors := &MockDoctorRepo{}
	appointments := &MockAppointmentRepo{}
	payments := &MockPaymentProcessor{}
	svc := newTestService(doctors, &MockPatientRepo{}, appointments, payments, nil)

	form := validForm()
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(testDoctor(), nil)
	appointments.On("HasConflict", "doc-1", form.StartAt).Return(false, nil)
	payments.On("ProcessPayment", mock.Anything, mock.Anything).Return(nil, errors.New("card declined"))

	_, err := svc.Submit(context.Background(), "pat-1", form)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "process payment")
	appointments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_UnapprovedDoctorRejected(t *testing.T) {
	doctors := &MockDoctorRepo{}
	svc := newTestService(doctors, &MockPatientRepo{}, &MockAppointmentRepo{}, &MockPaymentProcessor{}, nil)

	doctor := testDoctor()
	doctor.Status = models.DoctorStatusPending
	doctors.On("GetByIDWithProjection", "doc-1", mock.Anything).Return(doctor, nil)

	_, err := svc.Submit(context.Background(), "pat-1", validForm())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not accepting")
}

func TestCancel_OnlyParticipantsMayCancel(t *testing.T) {
	appointments := &MockAppointmentRepo{}
	svc := newTestService(&MockDoctorRepo{}, &MockPatientRepo{}, appointments, &MockPaymentProcessor{}, nil)

	appt := &models.Appointment{ID: "apt-1", PatientID: "pat-1", DoctorID: "doc-1", Status: models.AppointmentConfirmed}
	appointments.On("GetByID", "apt-1").Return(appt, nil)
	appointments.On("UpdateStatus", "apt-1", models.AppointmentCancelled).Return(nil)

	err := svc.Cancel(context.Background(), "someone-else", "apt-1")
	assert.Error(t, err)
	appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)

	err = svc.Cancel(context.Background(), "pat-1", "apt-1")
	assert.NoError(t, err)
	appointments.AssertCalled(t, "UpdateStatus", "apt-1", models.AppointmentCancelled)
}
