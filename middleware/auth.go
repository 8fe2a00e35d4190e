package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// bearerToken pulls the token out of the Authorization header, or aborts.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return "", false
	}
	return tokenString, true
}

// authorize validates the token, checks the role claim, and verifies the
// token hash against the auth cache with a DB fallback. fetchTokenHash loads
// the persisted hash for the account when the cache misses.
func authorize(c *gin.Context, expectedRole string, fetchTokenHash func(accountID string) (string, error)) (string, bool) {
	defer func() {
		if r := recover(); r != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": 500})
		}
	}()

	ctx := context.Background()

	tokenString, ok := bearerToken(c)
	if !ok {
		return "", false
	}

	accountID, role, err := utils.ExtractClaimsFromToken(tokenString)
	if err != nil || accountID == "" || role != expectedRole {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return "", false
	}

	computedHash := utils.HashToken(tokenString)
	cacheKey := utils.AuthCachePrefix + accountID

	authCache := utils.GetAuthCacheClient()
	cacheEnabled := true
	if authCache == nil {
		log.Printf("WARNING: Auth cache client not available. Falling back to DB lookup.")
		cacheEnabled = false
	}

	if cacheEnabled {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				return accountID, true
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch", "code": 0})
			return "", false
		} else if err != redis.Nil {
			log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
		}
	}

	storedHash, err := fetchTokenHash(accountID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error", "code": 0})
		return "", false
	}
	if storedHash == "" || storedHash != computedHash {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch", "code": 0})
		return "", false
	}

	if cacheEnabled {
		_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
	}
	return accountID, true
}

func JWTAuthPatientMiddleware(patients patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		fetch := func(accountID string) (string, error) {
			p, err := patients.GetByIDWithProjection(accountID, bson.M{"id": 1, "tokenHash": 1})
			if err != nil || p == nil {
				return "", err
			}
			return p.TokenHash, nil
		}
		accountID, ok := authorize(c, models.RolePatient, fetch)
		if !ok {
			return
		}
		c.Set("accountID", accountID)
		c.Set("role", models.RolePatient)
		c.Next()
	}
}

func JWTAuthDoctorMiddleware(doctors doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		fetch := func(accountID string) (string, error) {
			d, err := doctors.GetByIDWithProjection(accountID, bson.M{"id": 1, "tokenHash": 1})
			if err != nil || d == nil {
				return "", err
			}
			return d.TokenHash, nil
		}
		accountID, ok := authorize(c, models.RoleDoctor, fetch)
		if !ok {
			return
		}
		c.Set("accountID", accountID)
		c.Set("role", models.RoleDoctor)
		c.Next()
	}
}
