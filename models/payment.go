package models

import "time"

// PaymentRequest carries the details needed to charge a patient.
type PaymentRequest struct {
	PatientID string  `json:"patientId"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"` // e.g. "card", "cash"
}

// Invoice is the outcome of a processed payment. Card invoices stay pending
// until the payment intent is confirmed client-side.
type Invoice struct {
	InvoiceID       string    `bson:"invoiceId" json:"invoiceId"`
	Amount          float64   `bson:"amount" json:"amount"`
	Currency        string    `bson:"currency" json:"currency"`
	Method          string    `bson:"method" json:"method"`
	Status          string    `bson:"status" json:"status"` // "pending", "paid"
	PaymentIntentID string    `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	ClientSecret    string    `bson:"-" json:"clientSecret,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
