package account

import (
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
)

// AuthResponse is returned from registration and login. When the account's
// email is not yet verified, RequiresVerification is true and no token is
// issued or persisted.
type AuthResponse struct {
	ID                   string `json:"id"`
	Token                string `json:"token,omitempty"`
	FullName             string `json:"fullName,omitempty"`
	Email                string `json:"email,omitempty"`
	Role                 string `json:"role"`
	RequiresVerification bool   `json:"requiresVerification,omitempty"`
}

// Identity is the who-am-I snapshot for an authenticated account.
type Identity struct {
	ID            string `json:"id"`
	Role          string `json:"role"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// AccountService handles registration, authentication, and credential
// management for patients and doctors.
type AccountService interface {
	RegisterPatient(patient PatientRegistration) (*AuthResponse, error)
	RegisterDoctor(doctor DoctorRegistration) (*AuthResponse, error)
	Login(email, password, role string) (*AuthResponse, error)
	VerifyEmailOTP(accountID, role, otp string) (*AuthResponse, error)
	WhoAmI(accountID, role string) (*Identity, error)
	RevokeAuthToken(accountID, role string) error
	UpdatePassword(accountID, role, currentPassword, newPassword string) error
}

// PatientRegistration is the patient sign-up payload.
type PatientRegistration struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
}

// DoctorRegistration is the doctor sign-up payload. New doctors enter the
// vetting queue as pending.
type DoctorRegistration struct {
	FullName     string  `json:"fullName" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	PhoneNumber  string  `json:"phoneNumber" binding:"required"`
	Specialty    string  `json:"specialty" binding:"required"`
	Bio          string  `json:"bio"`
	OnlineFee    float64 `json:"onlineFee"`
	InPersonFee  float64 `json:"inPersonFee"`
	HomeVisitFee float64 `json:"homeVisitFee"`
	Currency     string  `json:"currency"`
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
}
