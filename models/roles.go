package models

// Account roles carried in JWT claims and route guards.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)
