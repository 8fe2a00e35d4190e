package handlers

import (
	"net/http"
	"time"

	"medibook/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetMyProfileHandler returns the authenticated account's own record with
// credentials stripped.
func GetMyProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	accountID := c.GetString("accountID")
	role := c.GetString("role")

	profile, err := fetchRoleProfile(accountID, role)
	if err != nil {
		logger.Error("Failed to fetch profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdatePatientProfileHandler updates the authenticated patient's editable
// fields.
func UpdatePatientProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("accountID")

	var req struct {
		FullName    string `json:"fullName"`
		PhoneNumber string `json:"phoneNumber"`
		Gender      string `json:"gender"`
		DateOfBirth string `json:"dateOfBirth"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doc := bson.M{}
	if req.FullName != "" {
		doc["fullName"] = req.FullName
	}
	if req.PhoneNumber != "" {
		doc["phoneNumber"] = req.PhoneNumber
	}
	if req.Gender != "" {
		doc["gender"] = req.Gender
	}
	if req.DateOfBirth != "" {
		doc["dateOfBirth"] = req.DateOfBirth
	}
	if len(doc) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid update fields provided"})
		return
	}
	doc["updatedAt"] = time.Now()

	if err := patients.UpdateSetDocument(patientID, doc); err != nil {
		logger.Error("Failed to update patient profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	updated, err := patients.GetByIDWithProjection(patientID, profileProjection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateHealthProfileHandler replaces the patient's health profile. The
// profile is attached to bookings only when the patient opts in per booking.
func UpdateHealthProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("accountID")

	var profile models.HealthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	profile.UpdatedAt = time.Now()

	doc := bson.M{"healthProfile": profile, "updatedAt": time.Now()}
	if err := patients.UpdateSetDocument(patientID, doc); err != nil {
		logger.Error("Failed to update health profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update health profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Health profile updated"})
}
