package middleware

import (
	"net/http"

	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"

	"github.com/gin-gonic/gin"
)

// RoleBasedAuthMiddleware dispatches to the patient or doctor auth middleware
// based on the role header.
func RoleBasedAuthMiddleware(patients patientRepo.PatientRepository, doctors doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader("role")

		switch role {
		case models.RolePatient:
			JWTAuthPatientMiddleware(patients)(c)
		case models.RoleDoctor:
			JWTAuthDoctorMiddleware(doctors)(c)
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid or missing 'role' header. Expected 'patient' or 'doctor'.",
			})
			return
		}
	}
}
