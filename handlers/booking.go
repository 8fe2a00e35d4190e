package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitBookingHandler validates and submits a booking for the authenticated
// patient. Local validation failures return 422, a slot conflict returns 409.
func SubmitBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("accountID")

	var form models.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := bookingService.Submit(c.Request.Context(), patientID, form)
	if err != nil {
		var vErr *booking.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Reason, "field": vErr.Field})
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "This slot has just been taken, please pick another time"})
		default:
			logger.Error("Booking submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetAppointmentHandler returns one appointment. Only participants may view it.
func GetAppointmentHandler(c *gin.Context) {
	accountID := c.GetString("accountID")
	appointmentID := c.Param("id")

	appt, err := bookingService.GetAppointment(appointmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if appt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if appt.PatientID != accountID && appt.DoctorID != accountID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this appointment"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListMyAppointmentsHandler returns the authenticated patient's appointments,
// newest first.
func ListMyAppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("accountID")

	appts, err := bookingService.ListPatientAppointments(patientID)
	if err != nil {
		logger.Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// ListDoctorAppointmentsHandler returns the authenticated doctor's schedule,
// optionally filtered to one date.
func ListDoctorAppointmentsHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString("accountID")
	date := c.Query("date")

	appts, err := bookingService.ListDoctorAppointments(doctorID, date)
	if err != nil {
		logger.Error("Failed to list doctor appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CancelAppointmentHandler cancels an appointment on behalf of a participant.
func CancelAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	accountID := c.GetString("accountID")
	appointmentID := c.Param("id")

	if err := bookingService.Cancel(c.Request.Context(), accountID, appointmentID); err != nil {
		logger.Error("Failed to cancel appointment", zap.String("appointmentID", appointmentID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}
