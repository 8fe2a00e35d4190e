package models

import "time"

// Doctor vetting statuses. New registrations start as pending until an admin
// reviews the submitted credentials.
const (
	DoctorStatusPending  = "pending"
	DoctorStatusApproved = "approved"
	DoctorStatusRejected = "rejected"
)

// ConsultationFees holds the doctor's fee per consultation type.
type ConsultationFees struct {
	Online    float64 `bson:"online" json:"online"`
	InPerson  float64 `bson:"inPerson" json:"inPerson"`
	HomeVisit float64 `bson:"homeVisit" json:"homeVisit"`
}

// Doctor represents a practitioner account with its public profile and schedule.
type Doctor struct {
	ID            string             `bson:"id" json:"id"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"-" json:"password,omitempty"`
	PasswordHash  string             `bson:"passwordHash" json:"-"`
	TokenHash     string             `bson:"tokenHash,omitempty" json:"-"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phoneNumber"`
	Specialty     string             `bson:"specialty" json:"specialty"`
	Bio           string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage  string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Status        string             `bson:"status" json:"status"`
	EmailVerified bool               `bson:"emailVerified" json:"emailVerified"`
	Fees          ConsultationFees   `bson:"fees" json:"fees"`
	Currency      string             `bson:"currency" json:"currency"`
	Availability  AvailabilityConfig `bson:"availability" json:"availability"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FeeFor returns the configured fee for the given consultation type, or zero
// when the type is unknown.
func (d *Doctor) FeeFor(consultationType string) float64 {
	switch consultationType {
	case ConsultationOnline:
		return d.Fees.Online
	case ConsultationInPerson:
		return d.Fees.InPerson
	case ConsultationHomeVisit:
		return d.Fees.HomeVisit
	}
	return 0
}
