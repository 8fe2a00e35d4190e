package handlers

import (
	"net/http"
	"time"

	"medibook/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// profileProjection strips credentials from account records returned to
// clients.
var profileProjection = bson.M{"passwordHash": 0, "tokenHash": 0}

// ListDoctorsHandler returns the approved doctor directory.
func ListDoctorsHandler(c *gin.Context) {
	logger := getLogger(c)

	list, err := doctors.ListApproved(profileProjection)
	if err != nil {
		logger.Error("Failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": list})
}

// GetDoctorHandler returns one approved doctor's public profile.
func GetDoctorHandler(c *gin.Context) {
	doctorID := c.Param("id")

	d, err := doctors.GetByIDWithProjection(doctorID, profileProjection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctor"})
		return
	}
	if d == nil || d.Status != models.DoctorStatusApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetAvailabilityHandler returns a doctor's schedule for booking screens.
func GetAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.Param("id")

	cfg, err := availabilityService.GetConfig(doctorID)
	if err != nil {
		logger.Error("Failed to fetch availability", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No availability configured for this doctor"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SetAvailabilityHandler replaces the authenticated doctor's schedule.
func SetAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString("accountID")

	var cfg models.AvailabilityConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := availabilityService.SetConfig(doctorID, cfg); err != nil {
		logger.Error("Failed to update availability", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// UpdateDoctorProfileHandler updates the authenticated doctor's editable
// profile fields.
func UpdateDoctorProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString("accountID")

	var req struct {
		FullName     string                   `json:"fullName"`
		PhoneNumber  string                   `json:"phoneNumber"`
		Specialty    string                   `json:"specialty"`
		Bio          string                   `json:"bio"`
		ProfileImage string                   `json:"profileImage"`
		Fees         *models.ConsultationFees `json:"fees"`
		Currency     string                   `json:"currency"`
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
	if req.Specialty != "" {
		doc["specialty"] = req.Specialty
	}
	if req.Bio != "" {
		doc["bio"] = req.Bio
	}
	if req.ProfileImage != "" {
		doc["profileImage"] = req.ProfileImage
	}
	if req.Fees != nil {
		doc["fees"] = req.Fees
	}
	if req.Currency != "" {
		doc["currency"] = req.Currency
	}
	if len(doc) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid update fields provided"})
		return
	}
	doc["updatedAt"] = time.Now()

	if err := doctors.UpdateSetDocument(doctorID, doc); err != nil {
		logger.Error("Failed to update doctor profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	updated, err := doctors.GetByIDWithProjection(doctorID, profileProjection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
