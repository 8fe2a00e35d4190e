package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/account"
	"medibook/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterPatientHandler creates a patient account. The response carries
// requiresVerification and no token; login completes after the emailed OTP
// is verified.
func RegisterPatientHandler(c *gin.Context) {
	logger := getLogger(c)

	var req account.PatientRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid patient registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := accountService.RegisterPatient(req)
	if err != nil {
		logger.Error("Patient registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegisterDoctorHandler creates a doctor account in the vetting queue.
func RegisterDoctorHandler(c *gin.Context) {
	logger := getLogger(c)

	var req account.DoctorRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid doctor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := accountService.RegisterDoctor(req)
	if err != nil {
		logger.Error("Doctor registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler authenticates an account and establishes a session. When the
// email is unverified the response carries requiresVerification and no
// session is persisted. The role profile fetch runs after the session is
// established, not in parallel with it.
func LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	auth, err := accountService.Login(req.Email, req.Password, req.Role)
	if err != nil {
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if auth.RequiresVerification {
		c.JSON(http.StatusOK, auth)
		return
	}

	sess := session.New(auth.ID, sessionStore, accountService)
	if err := sess.Establish(c.Request.Context(), *auth); err != nil {
		logger.Error("Failed to establish session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed, please try again"})
		return
	}

	profile, err := fetchRoleProfile(auth.ID, auth.Role)
	if err != nil {
		logger.Warn("Failed to fetch profile after login", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"auth":    auth,
		"session": sess.State().String(),
		"profile": profile,
	})
}

// VerifyOTPHandler completes email verification and finishes the login.
func VerifyOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		AccountID string `json:"accountId" binding:"required"`
		Role      string `json:"role" binding:"required"`
		OTP       string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth, err := accountService.VerifyEmailOTP(req.AccountID, req.Role, req.OTP)
	if err != nil {
		logger.Error("OTP verification failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	sess := session.New(auth.ID, sessionStore, accountService)
	if err := sess.Establish(c.Request.Context(), *auth); err != nil {
		logger.Error("Failed to establish session after verification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"auth":    auth,
		"session": sess.State().String(),
	})
}

// LogoutHandler revokes the token and clears the persisted session.
func LogoutHandler(c *gin.Context) {
	logger := getLogger(c)
	accountID := c.GetString("accountID")
	role := c.GetString("role")

	if err := accountService.RevokeAuthToken(accountID, role); err != nil {
		logger.Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess := session.New(accountID, sessionStore, accountService)
	if err := sess.Logout(c.Request.Context()); err != nil {
		logger.Warn("Failed to clear persisted session", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// UpdatePasswordHandler changes the account password.
func UpdatePasswordHandler(c *gin.Context) {
	logger := getLogger(c)
	accountID := c.GetString("accountID")
	role := c.GetString("role")

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := accountService.UpdatePassword(accountID, role, req.CurrentPassword, req.NewPassword); err != nil {
		logger.Error("Password update failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// fetchRoleProfile loads the role-specific account record with credentials
// stripped.
func fetchRoleProfile(accountID, role string) (any, error) {
	switch role {
	case models.RolePatient:
		return patients.GetByIDWithProjection(accountID, profileProjection)
	case models.RoleDoctor:
		return doctors.GetByIDWithProjection(accountID, profileProjection)
	default:
		return nil, nil
	}
}
