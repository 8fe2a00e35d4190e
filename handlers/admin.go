package handlers

import (
	"net/http"
	"time"

	"medibook/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminListDoctorsHandler returns doctors by vetting status (pending by
// default).
func AdminListDoctorsHandler(c *gin.Context) {
	logger := getLogger(c)
	status := c.Query("status")

	list, err := adminService.ListDoctors(status)
	if err != nil {
		logger.Error("Admin: failed to list doctors", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": list})
}

// AdminListPatientsHandler returns all patient accounts.
func AdminListPatientsHandler(c *gin.Context) {
	logger := getLogger(c)

	list, err := adminService.ListPatients()
	if err != nil {
		logger.Error("Admin: failed to list patients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": list})
}

// AdminVetDoctorHandler approves or rejects a doctor in the vetting queue.
func AdminVetDoctorHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := adminService.SetDoctorStatus(doctorID, req.Status); err != nil {
		logger.Error("Admin: failed to vet doctor", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor status updated"})
}

// AdminCreateFAQHandler adds an FAQ entry.
func AdminCreateFAQHandler(c *gin.Context) {
	logger := getLogger(c)

	var faq models.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if faq.Question == "" || faq.Answer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question and answer are required"})
		return
	}
	faq.ID = uuid.New().String()

	if err := faqs.Create(&faq); err != nil {
		logger.Error("Admin: failed to create FAQ", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FAQ"})
		return
	}
	c.JSON(http.StatusCreated, faq)
}

// AdminUpdateFAQHandler edits an FAQ entry.
func AdminUpdateFAQHandler(c *gin.Context) {
	logger := getLogger(c)
	faqID := c.Param("id")

	var faq models.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	faq.ID = faqID
	faq.UpdatedAt = time.Now()

	if err := faqs.Update(&faq); err != nil {
		logger.Error("Admin: failed to update FAQ", zap.String("faqID", faqID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, faq)
}

// AdminDeleteFAQHandler removes an FAQ entry.
func AdminDeleteFAQHandler(c *gin.Context) {
	logger := getLogger(c)
	faqID := c.Param("id")

	if err := faqs.Delete(faqID); err != nil {
		logger.Error("Admin: failed to delete FAQ", zap.String("faqID", faqID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FAQ deleted"})
}
