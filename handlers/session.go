package handlers

import (
	"errors"
	"net/http"
	"strings"

	"medibook/services/session"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResumeSessionHandler performs the cold-start bootstrap: the client presents
// its stored token, the persisted session snapshot is loaded and revalidated
// against the account store. A single failed revalidation clears the session;
// the client must log in again.
func ResumeSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header", "session": session.Unauthenticated.String()})
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	accountID, _, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "session": session.Unauthenticated.String()})
		return
	}

	sess := session.New(accountID, sessionStore, accountService)
	if err := sess.Bootstrap(c.Request.Context()); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session", "session": sess.State().String()})
			return
		}
		logger.Warn("Session bootstrap failed", zap.String("accountID", accountID), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer valid", "session": sess.State().String()})
		return
	}

	// The presented token must match the persisted one.
	if sess.Token() != tokenString {
		_ = sess.Logout(c.Request.Context())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch", "session": session.Unauthenticated.String()})
		return
	}

	identity := sess.Identity()
	profile, err := fetchRoleProfile(identity.ID, identity.Role)
	if err != nil {
		logger.Warn("Failed to fetch profile during bootstrap", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"session":  sess.State().String(),
		"identity": identity,
		"profile":  profile,
	})
}
