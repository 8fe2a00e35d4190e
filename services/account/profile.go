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

// WhoAmI returns the identity snapshot for an authenticated account. Callers
// treat a failure here as fatal for the session.
func (s *DefaultAccountService) WhoAmI(accountID, role string) (*Identity, error) {
	switch role {
	case models.RolePatient:
		p, err := s.Patients.GetByIDWithProjection(accountID, bson.M{"id": 1, "fullName": 1, "email": 1, "emailVerified": 1})
		if err != nil {
			utils.GetLogger().Error("WhoAmI: failed to fetch patient", zap.Error(err))
			return nil, fmt.Errorf("failed to resolve identity")
		}
		if p == nil {
			return nil, fmt.Errorf("account not found")
		}
		return &Identity{ID: p.ID, Role: role, FullName: p.FullName, Email: p.Email, EmailVerified: p.EmailVerified}, nil
	case models.RoleDoctor:
		d, err := s.Doctors.GetByIDWithProjection(accountID, bson.M{"id": 1, "fullName": 1, "email": 1, "emailVerified": 1})
		if err != nil {
			utils.GetLogger().Error("WhoAmI: failed to fetch doctor", zap.Error(err))
			return nil, fmt.Errorf("failed to resolve identity")
		}
		if d == nil {
			return nil, fmt.Errorf("account not found")
		}
		return &Identity{ID: d.ID, Role: role, FullName: d.FullName, Email: d.Email, EmailVerified: d.EmailVerified}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// RevokeAuthToken clears the token hash from the account record and removes
// the corresponding Redis cache entry.
func (s *DefaultAccountService) RevokeAuthToken(accountID, role string) error {
	doc := bson.M{"tokenHash": "", "updatedAt": time.Now()}
	var err error
	switch role {
	case models.RolePatient:
		err = s.Patients.UpdateSetDocument(accountID, doc)
	case models.RoleDoctor:
		err = s.Doctors.UpdateSetDocument(accountID, doc)
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		utils.GetLogger().Error("Failed to revoke auth token", zap.String("accountID", accountID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}

	cacheKey := utils.AuthCachePrefix + accountID
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache on logout", zap.Error(err))
	}
	return nil
}

// UpdatePassword verifies the current password before storing a new hash.
// The old token stays valid until its natural expiry.
func (s *DefaultAccountService) UpdatePassword(accountID, role, currentPassword, newPassword string) error {
	if err := verifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	var passwordHash string
	switch role {
	case models.RolePatient:
		p, err := s.Patients.GetByIDWithProjection(accountID, bson.M{"passwordHash": 1})
		if err != nil || p == nil {
			return fmt.Errorf("failed to update password, please try again")
		}
		passwordHash = p.PasswordHash
	case models.RoleDoctor:
		d, err := s.Doctors.GetByIDWithProjection(accountID, bson.M{"passwordHash": 1})
		if err != nil || d == nil {
			return fmt.Errorf("failed to update password, please try again")
		}
		passwordHash = d.PasswordHash
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}

	doc := bson.M{"passwordHash": string(newHash), "updatedAt": time.Now()}
	switch role {
	case models.RolePatient:
		err = s.Patients.UpdateSetDocument(accountID, doc)
	case models.RoleDoctor:
		err = s.Doctors.UpdateSetDocument(accountID, doc)
	}
	if err != nil {
		utils.GetLogger().Error("Failed to store new password hash", zap.Error(err))
		return fmt.Errorf("failed to update password, please try again")
	}
	return nil
}
