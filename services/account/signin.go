package account

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// credentials is the role-independent slice of an account needed for login.
type credentials struct {
	ID            string
	FullName      string
	Email         string
	PasswordHash  string
	EmailVerified bool
}

func (s *DefaultAccountService) fetchCredentials(email, role string) (*credentials, error) {
	switch role {
	case models.RolePatient:
		p, err := s.Patients.GetByEmailWithProjection(email, bson.M{})
		if err != nil || p == nil {
			return nil, err
		}
		return &credentials{ID: p.ID, FullName: p.FullName, Email: p.Email, PasswordHash: p.PasswordHash, EmailVerified: p.EmailVerified}, nil
	case models.RoleDoctor:
		d, err := s.Doctors.GetByEmailWithProjection(email, bson.M{})
		if err != nil || d == nil {
			return nil, err
		}
		return &credentials{ID: d.ID, FullName: d.FullName, Email: d.Email, PasswordHash: d.PasswordHash, EmailVerified: d.EmailVerified}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// persistTokenHash stores the hash of the freshly issued token on the account
// record. This is the single awaited write; there is no read-back to confirm.
func (s *DefaultAccountService) persistTokenHash(accountID, role, tokenHash string) error {
	doc := bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}
	switch role {
	case models.RolePatient:
		return s.Patients.UpdateSetDocument(accountID, doc)
	case models.RoleDoctor:
		return s.Doctors.UpdateSetDocument(accountID, doc)
	default:
		return fmt.Errorf("unknown role %q", role)
	}
}

// issueToken generates a JWT, persists its hash, and clears the stale auth
// cache entry for the account.
func (s *DefaultAccountService) issueToken(creds *credentials, role string) (string, error) {
	token, err := utils.GenerateToken(creds.ID, creds.Email, role, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	if err := s.persistTokenHash(creds.ID, role, utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to persist token hash", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	cacheKey := utils.AuthCachePrefix + creds.ID
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
	return token, nil
}

// Login verifies credentials for the given role. An unverified email yields a
// RequiresVerification response with a fresh OTP and no persisted session.
func (s *DefaultAccountService) Login(email, password, role string) (*AuthResponse, error) {
	creds, err := s.fetchCredentials(email, role)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if creds == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if !creds.EmailVerified {
		if err := utils.InitiateEmailOTP(creds.ID, creds.Email); err != nil {
			utils.GetLogger().Error("Login: failed to resend verification OTP", zap.Error(err))
		}
		return &AuthResponse{
			ID:                   creds.ID,
			Email:                creds.Email,
			Role:                 role,
			RequiresVerification: true,
		}, nil
	}

	token, err := s.issueToken(creds, role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:       creds.ID,
		Token:    token,
		FullName: creds.FullName,
		Email:    creds.Email,
		Role:     role,
	}, nil
}

// VerifyEmailOTP validates the code, marks the email verified, and completes
// the login by issuing a token.
func (s *DefaultAccountService) VerifyEmailOTP(accountID, role, otp string) (*AuthResponse, error) {
	if err := utils.VerifyEmailOTPRecord(accountID, otp); err != nil {
		return nil, err
	}

	doc := bson.M{"emailVerified": true, "updatedAt": time.Now()}
	var creds *credentials
	switch role {
	case models.RolePatient:
		if err := s.Patients.UpdateSetDocument(accountID, doc); err != nil {
			utils.GetLogger().Error("VerifyEmailOTP: failed to mark patient verified", zap.Error(err))
			return nil, fmt.Errorf("verification failed, please try again")
		}
		p, err := s.Patients.GetByIDWithProjection(accountID, nil)
		if err != nil || p == nil {
			return nil, fmt.Errorf("verification failed, please try again")
		}
		creds = &credentials{ID: p.ID, FullName: p.FullName, Email: p.Email, EmailVerified: true}
	case models.RoleDoctor:
		if err := s.Doctors.UpdateSetDocument(accountID, doc); err != nil {
			utils.GetLogger().Error("VerifyEmailOTP: failed to mark doctor verified", zap.Error(err))
			return nil, fmt.Errorf("verification failed, please try again")
		}
		d, err := s.Doctors.GetByIDWithProjection(accountID, nil)
		if err != nil || d == nil {
			return nil, fmt.Errorf("verification failed, please try again")
		}
		creds = &credentials{ID: d.ID, FullName: d.FullName, Email: d.Email, EmailVerified: true}
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	token, err := s.issueToken(creds, role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:       creds.ID,
		Token:    token,
		FullName: creds.FullName,
		Email:    creds.Email,
		Role:     role,
	}, nil
}
