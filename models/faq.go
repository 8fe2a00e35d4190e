package models

import "time"

// FAQ is an admin-managed frequently-asked question shown to patients.
type FAQ struct {
	ID        string    `bson:"id" json:"id"`
	Question  string    `bson:"question" json:"question"`
	Answer    string    `bson:"answer" json:"answer"`
	Category  string    `bson:"category,omitempty" json:"category,omitempty"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
