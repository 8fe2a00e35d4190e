package models

import "time"

// HealthProfile is the patient-maintained medical summary that can optionally
// be shared with a doctor when booking.
type HealthProfile struct {
	BloodType  string    `bson:"bloodType,omitempty" json:"bloodType,omitempty"`
	Allergies  []string  `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Conditions []string  `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Medication []string  `bson:"medication,omitempty" json:"medication,omitempty"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Patient represents a patient account.
type Patient struct {
	ID            string         `bson:"id" json:"id"`
	FullName      string         `bson:"fullName" json:"fullName"`
	Email         string         `bson:"email" json:"email"`
	Password      string         `bson:"-" json:"password,omitempty"`
	PasswordHash  string         `bson:"passwordHash" json:"-"`
	TokenHash     string         `bson:"tokenHash,omitempty" json:"-"`
	PhoneNumber   string         `bson:"phoneNumber" json:"phoneNumber"`
	Gender        string         `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth   string         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // "YYYY-MM-DD"
	ProfileImage  string         `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	EmailVerified bool           `bson:"emailVerified" json:"emailVerified"`
	HealthProfile *HealthProfile `bson:"healthProfile,omitempty" json:"healthProfile,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}
