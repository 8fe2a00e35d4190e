package handlers

import (
	doctorRepo "medibook/database/repository/doctor"
	faqRepo "medibook/database/repository/faq"
	patientRepo "medibook/database/repository/patient"
	"medibook/services/account"
	"medibook/services/admin"
	"medibook/services/availability"
	"medibook/services/booking"
	"medibook/services/session"
)

// Package-level service instances, wired once at startup.
var (
	accountService      account.AccountService
	bookingService      booking.BookingService
	availabilityService availability.AvailabilityService
	adminService        admin.AdminService
	sessionStore        session.Store

	patients patientRepo.PatientRepository
	doctors  doctorRepo.DoctorRepository
	faqs     faqRepo.FAQRepository
)

// Deps carries everything the handlers need.
type Deps struct {
	Accounts     account.AccountService
	Bookings     booking.BookingService
	Availability availability.AvailabilityService
	Admin        admin.AdminService
	Sessions     session.Store

	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
	FAQs     faqRepo.FAQRepository
}

// Init wires the handler package. Must be called before any route is served.
func Init(d Deps) {
	accountService = d.Accounts
	bookingService = d.Bookings
	availabilityService = d.Availability
	adminService = d.Admin
	sessionStore = d.Sessions
	patients = d.Patients
	doctors = d.Doctors
	faqs = d.FAQs
}
