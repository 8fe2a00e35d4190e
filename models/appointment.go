package models

import "time"

// Consultation types offered by doctors.
const (
	ConsultationOnline    = "online"
	ConsultationInPerson  = "in_person"
	ConsultationHomeVisit = "home_visit"
)

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment represents a confirmed appointment record.
type Appointment struct {
	ID               string         `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	DoctorID         string         `bson:"doctorId" json:"doctorId"`                 // Doctor who was booked
	PatientID        string         `bson:"patientId" json:"patientId"`               // Patient who made the booking
	Date             string         `bson:"date" json:"date"`                         // Appointment date in "YYYY-MM-DD" format
	Start            int            `bson:"start" json:"start"`                       // Start time (minutes from midnight)
	StartAt          time.Time      `bson:"startAt" json:"startAt"`                   // Full timezone-aware instant
	ConsultationType string         `bson:"consultationType" json:"consultationType"` // "online", "in_person", or "home_visit"
	Reason           string         `bson:"reason" json:"reason"`                     // Patient-stated reason for the visit
	Fee              float64        `bson:"fee" json:"fee"`                           // Computed consultation fee
	Currency         string         `bson:"currency" json:"currency"`
	Status           string         `bson:"status" json:"status"`
	SharedProfile    *HealthProfile `bson:"sharedProfile,omitempty" json:"sharedProfile,omitempty"`
	Invoice          *Invoice       `bson:"invoice,omitempty" json:"invoice,omitempty"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
}

// BookingForm is the ephemeral submission payload. It is constructed right
// before submission and discarded once the request resolves.
type BookingForm struct {
	DoctorID           string    `json:"doctorId" binding:"required"`
	StartAt            time.Time `json:"startAt" binding:"required"`
	ConsultationType   string    `json:"consultationType" binding:"required"`
	Reason             string    `json:"reason"`
	Gender             string    `json:"gender"`
	ConsentTreatment   bool      `json:"consentTreatment"`
	ConsentDataSharing bool      `json:"consentDataSharing"`
	ShareHealthProfile bool      `json:"shareHealthProfile"`
	PaymentMethod      string    `json:"paymentMethod"`
}
