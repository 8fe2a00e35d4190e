package account

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type MockPatientRepo struct {
	mock.Mock
}

func (m *MockPatientRepo) Create(p *models.Patient) error {
	return m.Called(p).Error(0)
}

func (m *MockPatientRepo) Update(p *models.Patient) error {
	return m.Called(p).Error(0)
}

func (m *MockPatientRepo) UpdateSetDocument(id string, doc bson.M) error {
	return m.Called(id, doc).Error(0)
}

func (m *MockPatientRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockPatientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error) {
	args := m.Called(id, projection)
	if p, ok := args.Get(0).(*models.Patient); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Patient, error) {
	args := m.Called(email, projection)
	if p, ok := args.Get(0).(*models.Patient); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepo) GetAllWithProjection(projection bson.M) ([]models.Patient, error) {
	args := m.Called(projection)
	if list, ok := args.Get(0).([]models.Patient); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDoctorRepo struct {
	mock.Mock
}

func (m *MockDoctorRepo) Create(d *models.Doctor) error {
	return m.Called(d).Error(0)
}

func (m *MockDoctorRepo) Update(d *models.Doctor) error {
	return m.Called(d).Error(0)
}

func (m *MockDoctorRepo) UpdateSetDocument(id string, doc bson.M) error {
	return m.Called(id, doc).Error(0)
}

func (m *MockDoctorRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	args := m.Called(id, projection)
	if d, ok := args.Get(0).(*models.Doctor); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Doctor, error) {
	args := m.Called(email, projection)
	if d, ok := args.Get(0).(*models.Doctor); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) ListByStatus(status string, projection bson.M) ([]models.Doctor, error) {
	args := m.Called(status, projection)
	if list, ok := args.Get(0).([]models.Doctor); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) ListApproved(projection bson.M) ([]models.Doctor, error) {
	args := m.Called(projection)
	if list, ok := args.Get(0).([]models.Doctor); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) GetAvailability(doctorID string) (*models.AvailabilityConfig, error) {
	args := m.Called(doctorID)
	if cfg, ok := args.Get(0).(*models.AvailabilityConfig); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) SetAvailability(doctorID string, cfg models.AvailabilityConfig) error {
	return m.Called(doctorID, cfg).Error(0)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginUnverifiedEmailRequiresVerification(t *testing.T) {
	patientRepo := new(MockPatientRepo)
	patientRepo.On("GetByEmailWithProjection", "jane@example.com", mock.Anything).Return(&models.Patient{
		ID:            "acct-1",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		PasswordHash:  hashFor(t, "Str0ng!pass"),
		EmailVerified: false,
	}, nil)

	svc := &DefaultAccountService{Patients: patientRepo, Doctors: new(MockDoctorRepo)}

	resp, err := svc.Login("jane@example.com", "Str0ng!pass", models.RolePatient)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.RequiresVerification)
	assert.Empty(t, resp.Token, "no token may be issued before email verification")
	patientRepo.AssertNotCalled(t, "UpdateSetDocument", mock.Anything, mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	patientRepo := new(MockPatientRepo)
	patientRepo.On("GetByEmailWithProjection", "jane@example.com", mock.Anything).Return(&models.Patient{
		ID:            "acct-1",
		Email:         "jane@example.com",
		PasswordHash:  hashFor(t, "Str0ng!pass"),
		EmailVerified: true,
	}, nil)

	svc := &DefaultAccountService{Patients: patientRepo, Doctors: new(MockDoctorRepo)}

	resp, err := svc.Login("jane@example.com", "wrong", models.RolePatient)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "invalid email or password")
}

func TestLoginUnknownAccount(t *testing.T) {
	patientRepo := new(MockPatientRepo)
	patientRepo.On("GetByEmailWithProjection", "ghost@example.com", mock.Anything).Return(nil, nil)

	svc := &DefaultAccountService{Patients: patientRepo, Doctors: new(MockDoctorRepo)}

	resp, err := svc.Login("ghost@example.com", "whatever", models.RolePatient)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "invalid email or password")
}

func TestLoginVerifiedIssuesToken(t *testing.T) {
	patientRepo := new(MockPatientRepo)
	patientRepo.On("GetByEmailWithProjection", "jane@example.com", mock.Anything).Return(&models.Patient{
		ID:            "acct-1",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		PasswordHash:  hashFor(t, "Str0ng!pass"),
		EmailVerified: true,
	}, nil)
	patientRepo.On("UpdateSetDocument", "acct-1", mock.MatchedBy(func(doc bson.M) bool {
		hash, ok := doc["tokenHash"].(string)
		return ok && hash != ""
	})).Return(nil)

	svc := &DefaultAccountService{Patients: patientRepo, Doctors: new(MockDoctorRepo)}

	resp, err := svc.Login("jane@example.com", "Str0ng!pass", models.RolePatient)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.False(t, resp.RequiresVerification)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RolePatient, resp.Role)
	patientRepo.AssertExpectations(t)
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	patientRepo := new(MockPatientRepo)
	patientRepo.On("GetByEmailWithProjection", "jane@example.com", mock.Anything).Return(&models.Patient{ID: "acct-1"}, nil)

	svc := &DefaultAccountService{Patients: patientRepo, Doctors: new(MockDoctorRepo)}

	resp, err := svc.RegisterPatient(PatientRegistration{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Password:    "Str0ng!pass",
		PhoneNumber: "555-0100",
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.EqualError(t, err, "an account with this email already exists")
	patientRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterPatientWeakPassword(t *testing.T) {
	svc := &DefaultAccountService{Patients: new(MockPatientRepo), Doctors: new(MockDoctorRepo)}

	_, err := svc.RegisterPatient(PatientRegistration{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Password:    "short",
		PhoneNumber: "555-0100",
	})
	require.Error(t, err)
}
