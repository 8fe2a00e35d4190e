package account

import (
	"fmt"
	"regexp"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// verifyPasswordComplexity checks that the password contains at least one lowercase letter,
// one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw) // non-alphanumeric
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// RegisterPatient creates a patient account and starts email verification.
// No token is issued until the email is verified.
func (s *DefaultAccountService) RegisterPatient(reg PatientRegistration) (*AuthResponse, error) {
	if err := verifyPasswordComplexity(reg.Password); err != nil {
		return nil, err
	}

	existing, err := s.Patients.GetByEmailWithProjection(reg.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing patient", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	patient := models.Patient{
		ID:           uuid.New().String(),
		FullName:     reg.FullName,
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		PhoneNumber:  reg.PhoneNumber,
		Gender:       reg.Gender,
		DateOfBirth:  reg.DateOfBirth,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Patients.Create(&patient); err != nil {
		utils.GetLogger().Error("Failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := utils.InitiateEmailOTP(patient.ID, patient.Email); err != nil {
		utils.GetLogger().Error("Failed to initiate verification OTP", zap.Error(err))
	}

	return &AuthResponse{
		ID:                   patient.ID,
		FullName:             patient.FullName,
		Email:                patient.Email,
		Role:                 models.RolePatient,
		RequiresVerification: true,
	}, nil
}

// RegisterDoctor creates a doctor account in the vetting queue and starts
// email verification.
func (s *DefaultAccountService) RegisterDoctor(reg DoctorRegistration) (*AuthResponse, error) {
	if err := verifyPasswordComplexity(reg.Password); err != nil {
		return nil, err
	}

	existing, err := s.Doctors.GetByEmailWithProjection(reg.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing doctor", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	currency := reg.Currency
	if currency == "" {
		currency = "usd"
	}

	now := time.Now()
	doctor := models.Doctor{
		ID:           uuid.New().String(),
		FullName:     reg.FullName,
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		PhoneNumber:  reg.PhoneNumber,
		Specialty:    reg.Specialty,
		Bio:          reg.Bio,
		Status:       models.DoctorStatusPending,
		Currency:     currency,
		Fees: models.ConsultationFees{
			Online:    reg.OnlineFee,
			InPerson:  reg.InPersonFee,
			HomeVisit: reg.HomeVisitFee,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Doctors.Create(&doctor); err != nil {
		utils.GetLogger().Error("Failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := utils.InitiateEmailOTP(doctor.ID, doctor.Email); err != nil {
		utils.GetLogger().Error("Failed to initiate verification OTP", zap.Error(err))
	}

	return &AuthResponse{
		ID:                   doctor.ID,
		FullName:             doctor.FullName,
		Email:                doctor.Email,
		Role:                 models.RoleDoctor,
		RequiresVerification: true,
	}, nil
}
